package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:191;uniqueIndex" json:"email"`
	Name      string    `gorm:"size:191" json:"name"`
	Password  string    `gorm:"size:191" json:"-"`
	Role      Role      `gorm:"size:16;default:USER" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}
