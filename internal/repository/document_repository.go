package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RusMail/document-dealer/internal/model"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *model.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var doc model.Document
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Contractor").
		Preload("Creator").
		First(&doc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// List возвращает документы, новые первыми.
func (r *DocumentRepository) List(ctx context.Context) ([]model.Document, error) {
	var docs []model.Document
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Contractor").
		Preload("Creator").
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// UpdateStatusFrom переводит документ в новый статус, только если текущий
// статус входит в from. Возвращает false, если строка не была обновлена.
func (r *DocumentRepository) UpdateStatusFrom(
	ctx context.Context,
	id uuid.UUID,
	to model.DocumentStatus,
	from ...model.DocumentStatus,
) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Finalize переводит документ в конечный статус и сохраняет ответ workflow.
// Условие на текущий статус делает применение колбэка атомарным: для уже
// завершённого документа строка не обновляется.
func (r *DocumentRepository) Finalize(
	ctx context.Context,
	id uuid.UUID,
	status model.DocumentStatus,
	response string,
	documentURL string,
) (bool, error) {
	updates := map[string]interface{}{
		"status":          status,
		"render_response": response,
	}
	if documentURL != "" {
		updates["document_url"] = documentURL
	}
	result := r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("id = ? AND status IN ?", id, []model.DocumentStatus{
			model.DocumentStatusPending,
			model.DocumentStatusProcessing,
		}).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Document{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
