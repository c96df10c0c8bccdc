package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/RusMail/document-dealer/internal/auth"
	"github.com/RusMail/document-dealer/internal/model"
	"github.com/RusMail/document-dealer/internal/repository"
)

const minPasswordLength = 6

type AuthService struct {
	users  *repository.UserRepository
	issuer *auth.Issuer
}

func NewAuthService(users *repository.UserRepository, issuer *auth.Issuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Role     model.Role
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	if input.Email == "" || input.Name == "" || input.Password == "" {
		return nil, "", fmt.Errorf("%w: email, name, and password are required", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Email:    input.Email,
		Name:     input.Name,
		Password: string(hash),
		Role:     input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", fmt.Errorf("%w: user with this email already exists", ErrConflict)
		}
		return nil, "", err
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CreateAdmin — bootstrap первого администратора. Доступен без токена,
// но только пока в базе нет ни одного ADMIN.
func (s *AuthService) CreateAdmin(ctx context.Context, input RegisterInput) (*model.User, error) {
	count, err := s.users.CountAdmins(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: admin user already exists", ErrInvalidInput)
	}

	input.Role = model.RoleAdmin
	user, _, err := s.Register(ctx, input)
	return user, err
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, email string) (*model.User, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}

	taken, err := s.users.EmailTaken(ctx, email, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: email is already taken", ErrConflict)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user.Name = name
	user.Email = email
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if current == "" || next == "" {
		return fmt.Errorf("%w: current password and new password are required", ErrInvalidInput)
	}
	if len(next) < minPasswordLength {
		return fmt.Errorf("%w: new password must be at least %d characters long", ErrInvalidInput, minPasswordLength)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return fmt.Errorf("%w: current password is incorrect", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	return s.users.Update(ctx, user)
}

type UpdateUserInput struct {
	Name  string
	Email string
	Role  model.Role
}

func (s *AuthService) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*model.User, error) {
	if input.Name == "" || input.Email == "" || input.Role == "" {
		return nil, fmt.Errorf("%w: name, email, and role are required", ErrInvalidInput)
	}
	if input.Role != model.RoleAdmin && input.Role != model.RoleUser {
		return nil, fmt.Errorf("%w: invalid role", ErrInvalidInput)
	}

	taken, err := s.users.EmailTaken(ctx, input.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: email is already taken", ErrConflict)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user.Name = input.Name
	user.Email = input.Email
	user.Role = input.Role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return fmt.Errorf("%w: cannot delete your own account", ErrInvalidInput)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
