package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RusMail/document-dealer/internal/model"
	"github.com/RusMail/document-dealer/internal/repository"
)

// RegistryExporter выгружает реестр контрагентов в файл.
type RegistryExporter interface {
	Generate(contractors []model.Contractor) ([]byte, error)
}

// CardGenerator строит карточку реквизитов контрагента.
type CardGenerator interface {
	Generate(contractor model.Contractor) ([]byte, error)
}

type ContractorService struct {
	contractors *repository.ContractorRepository
	exporter    RegistryExporter
	cards       CardGenerator
}

func NewContractorService(
	contractors *repository.ContractorRepository,
	exporter RegistryExporter,
	cards CardGenerator,
) *ContractorService {
	return &ContractorService{contractors: contractors, exporter: exporter, cards: cards}
}

type ContractorInput struct {
	ShortName            string
	FullName             string
	OGRN                 string
	INN                  string
	KPP                  string
	OKPO                 string
	OKVED                string
	LegalAddress         string
	ActualAddress        string
	CheckingAccount      string
	BankName             string
	CorrespondentAccount string
	BIK                  string
	Director             string
	Phone                string
	Email                string
}

func (s *ContractorService) List(ctx context.Context) ([]model.Contractor, error) {
	return s.contractors.List(ctx)
}

func (s *ContractorService) Get(ctx context.Context, id uuid.UUID) (*model.Contractor, error) {
	contractor, err := s.contractors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contractor, nil
}

func (s *ContractorService) Create(ctx context.Context, input ContractorInput, principal model.Principal) (*model.Contractor, error) {
	if input.ShortName == "" || input.FullName == "" || input.OGRN == "" || input.INN == "" || input.LegalAddress == "" {
		return nil, fmt.Errorf("%w: short name, full name, OGRN, INN, and legal address are required", ErrInvalidInput)
	}

	contractor := &model.Contractor{
		ShortName:            input.ShortName,
		FullName:             input.FullName,
		OGRN:                 input.OGRN,
		INN:                  input.INN,
		KPP:                  input.KPP,
		OKPO:                 input.OKPO,
		OKVED:                input.OKVED,
		LegalAddress:         input.LegalAddress,
		ActualAddress:        input.ActualAddress,
		CheckingAccount:      input.CheckingAccount,
		BankName:             input.BankName,
		CorrespondentAccount: input.CorrespondentAccount,
		BIK:                  input.BIK,
		Director:             input.Director,
		Phone:                input.Phone,
		Email:                input.Email,
		CreatedBy:            principal.ID,
	}
	if err := s.contractors.Create(ctx, contractor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: contractor with this INN already exists", ErrConflict)
		}
		return nil, err
	}
	return s.Get(ctx, contractor.ID)
}

func (s *ContractorService) Update(ctx context.Context, id uuid.UUID, input ContractorInput) (*model.Contractor, error) {
	contractor, err := s.contractors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	contractor.ShortName = input.ShortName
	contractor.FullName = input.FullName
	contractor.OGRN = input.OGRN
	contractor.INN = input.INN
	contractor.KPP = input.KPP
	contractor.OKPO = input.OKPO
	contractor.OKVED = input.OKVED
	contractor.LegalAddress = input.LegalAddress
	contractor.ActualAddress = input.ActualAddress
	contractor.CheckingAccount = input.CheckingAccount
	contractor.BankName = input.BankName
	contractor.CorrespondentAccount = input.CorrespondentAccount
	contractor.BIK = input.BIK
	contractor.Director = input.Director
	contractor.Phone = input.Phone
	contractor.Email = input.Email

	if err := s.contractors.Update(ctx, contractor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: contractor with this INN already exists", ErrConflict)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ContractorService) Delete(ctx context.Context, id uuid.UUID) error {
	referenced, err := s.contractors.ReferencedByDocuments(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: contractor is referenced by documents", ErrConflict)
	}

	if err := s.contractors.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("%w: contractor is referenced by documents", ErrConflict)
		}
		return err
	}
	return nil
}

type ExportResult struct {
	FileName string
	Content  []byte
}

// Export выгружает весь реестр контрагентов в xlsx.
func (s *ContractorService) Export(ctx context.Context) (*ExportResult, error) {
	contractors, err := s.contractors.List(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.exporter.Generate(contractors)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: "contractors.xlsx", Content: content}, nil
}

// Card строит PDF-карточку реквизитов контрагента.
func (s *ContractorService) Card(ctx context.Context, id uuid.UUID) (*ExportResult, error) {
	contractor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := s.cards.Generate(*contractor)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("contractor-%s.pdf", contractor.ID),
		Content:  content,
	}, nil
}
