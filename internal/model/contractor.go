package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contractor хранит реквизиты контрагента. Одна и та же запись может
// выступать заказчиком или исполнителем по документу.
type Contractor struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShortName            string    `gorm:"size:191" json:"shortName"`
	FullName             string    `gorm:"size:512" json:"fullName"`
	OGRN                 string    `gorm:"column:ogrn;size:32" json:"ogrn"`
	INN                  string    `gorm:"column:inn;size:32;uniqueIndex" json:"inn"`
	KPP                  string    `gorm:"column:kpp;size:32" json:"kpp"`
	OKPO                 string    `gorm:"column:okpo;size:32" json:"okpo"`
	OKVED                string    `gorm:"column:okved;size:32" json:"okved"`
	LegalAddress         string    `gorm:"size:512" json:"legalAddress"`
	ActualAddress        string    `gorm:"size:512" json:"actualAddress"`
	CheckingAccount      string    `gorm:"size:64" json:"checkingAccount"`
	BankName             string    `gorm:"size:191" json:"bankName"`
	CorrespondentAccount string    `gorm:"size:64" json:"correspondentAccount"`
	BIK                  string    `gorm:"column:bik;size:32" json:"bik"`
	Director             string    `gorm:"size:191" json:"director"`
	Phone                string    `gorm:"size:64" json:"phone"`
	Email                string    `gorm:"size:191" json:"email"`
	CreatedBy            uuid.UUID `gorm:"type:uuid" json:"createdBy"`
	Creator              *User     `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

func (c *Contractor) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
