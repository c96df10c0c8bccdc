package db

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/RusMail/document-dealer/internal/model"
)

// SeedAdmin создаёт администратора по умолчанию, если в базе ещё нет ни одного.
func SeedAdmin(db *gorm.DB) (*model.User, error) {
	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := model.User{
		Email:    "admin@example.com",
		Name:     "Administrator",
		Password: string(hash),
		Role:     model.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// SeedSampleContractor добавляет тестового контрагента, если таблица пуста.
func SeedSampleContractor(db *gorm.DB, createdBy *model.User) error {
	if createdBy == nil {
		return nil
	}
	var count int64
	if err := db.Model(&model.Contractor{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	sample := model.Contractor{
		ShortName:            "ООО Пример",
		FullName:             "Общество с ограниченной ответственностью \"Пример компании\"",
		OGRN:                 "12345678901234567",
		INN:                  "123456789012",
		KPP:                  "123401001",
		OKPO:                 "12345678",
		OKVED:                "62.01",
		LegalAddress:         "г. Москва, ул. Примерная, д. 1",
		ActualAddress:        "г. Москва, ул. Примерная, д. 1",
		CheckingAccount:      "40702810000000000001",
		BankName:             "ПАО СБЕРБАНК",
		CorrespondentAccount: "30101810400000000225",
		BIK:                  "044525225",
		Director:             "Иванов Иван Иванович",
		Phone:                "+7 (495) 123-45-67",
		Email:                "info@example.com",
		CreatedBy:            createdBy.ID,
	}
	return db.Create(&sample).Error
}
