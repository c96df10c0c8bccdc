package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentType string

const (
	DocumentTypeShipment DocumentType = "SHIPMENT"
	DocumentTypeRental   DocumentType = "RENTAL"
)

func (t DocumentType) Valid() bool {
	return t == DocumentTypeShipment || t == DocumentTypeRental
}

func (t DocumentType) Label() string {
	if t == DocumentTypeRental {
		return "Аренда"
	}
	return "Отгрузка"
}

type DocumentStatus string

const (
	DocumentStatusPending    DocumentStatus = "PENDING"
	DocumentStatusProcessing DocumentStatus = "PROCESSING"
	DocumentStatusCompleted  DocumentStatus = "COMPLETED"
	DocumentStatusFailed     DocumentStatus = "FAILED"
)

// Terminal сообщает, является ли статус конечным.
func (s DocumentStatus) Terminal() bool {
	return s == DocumentStatusCompleted || s == DocumentStatusFailed
}

// CanTransition описывает допустимые переходы статуса документа:
// PENDING -> PROCESSING | COMPLETED | FAILED, PROCESSING -> COMPLETED | FAILED.
// Колбэк может прийти раньше, чем завершится исходящая отправка, поэтому
// переход из PENDING сразу в конечный статус разрешён.
func (s DocumentStatus) CanTransition(to DocumentStatus) bool {
	if s.Terminal() {
		return false
	}
	switch to {
	case DocumentStatusProcessing:
		return s == DocumentStatusPending
	case DocumentStatusCompleted, DocumentStatusFailed:
		return true
	default:
		return false
	}
}

type Document struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Type           DocumentType   `gorm:"size:16" json:"type"`
	CustomerID     uuid.UUID      `gorm:"type:uuid" json:"customerId"`
	ContractorID   uuid.UUID      `gorm:"type:uuid" json:"contractorId"`
	Amount         float64        `json:"amount"`
	Date           time.Time      `json:"date"`
	Status         DocumentStatus `gorm:"size:16;default:PENDING" json:"status"`
	RenderResponse string         `gorm:"type:text" json:"renderResponse,omitempty"`
	DocumentURL    string         `gorm:"size:1024" json:"documentUrl,omitempty"`
	CreatedBy      uuid.UUID      `gorm:"type:uuid" json:"createdBy"`
	Customer       *Contractor    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Contractor     *Contractor    `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`
	Creator        *User          `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

func (d *Document) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Status == "" {
		d.Status = DocumentStatusPending
	}
	return nil
}
