package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RusMail/document-dealer/internal/model"
)

type ContractorRepository struct {
	db *gorm.DB
}

func NewContractorRepository(db *gorm.DB) *ContractorRepository {
	return &ContractorRepository{db: db}
}

func (r *ContractorRepository) Create(ctx context.Context, contractor *model.Contractor) error {
	return r.db.WithContext(ctx).Create(contractor).Error
}

func (r *ContractorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Contractor, error) {
	var contractor model.Contractor
	err := r.db.WithContext(ctx).
		Preload("Creator").
		First(&contractor, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contractor, nil
}

func (r *ContractorRepository) List(ctx context.Context) ([]model.Contractor, error) {
	var contractors []model.Contractor
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Order("created_at ASC").
		Find(&contractors).Error
	if err != nil {
		return nil, err
	}
	return contractors, nil
}

func (r *ContractorRepository) Update(ctx context.Context, contractor *model.Contractor) error {
	return r.db.WithContext(ctx).Save(contractor).Error
}

func (r *ContractorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Contractor{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReferencedByDocuments сообщает, ссылается ли хотя бы один документ на контрагента.
func (r *ContractorRepository) ReferencedByDocuments(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("customer_id = ? OR contractor_id = ?", id, id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
