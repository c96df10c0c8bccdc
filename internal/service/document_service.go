package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/RusMail/document-dealer/internal/model"
	"github.com/RusMail/document-dealer/internal/render"
	"github.com/RusMail/document-dealer/internal/repository"
)

// Dispatcher отправляет запрос на генерацию во внешний workflow.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload render.Payload) error
}

type DocumentService struct {
	docs        *repository.DocumentRepository
	contractors *repository.ContractorRepository
	dispatcher  Dispatcher
	log         zerolog.Logger
}

func NewDocumentService(
	docs *repository.DocumentRepository,
	contractors *repository.ContractorRepository,
	dispatcher Dispatcher,
	log zerolog.Logger,
) *DocumentService {
	return &DocumentService{
		docs:        docs,
		contractors: contractors,
		dispatcher:  dispatcher,
		log:         log,
	}
}

func (s *DocumentService) List(ctx context.Context) ([]model.Document, error) {
	return s.docs.List(ctx)
}

func (s *DocumentService) Get(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

type CreateDocumentInput struct {
	Type         model.DocumentType
	CustomerID   uuid.UUID
	ContractorID uuid.UUID
	Amount       float64
	Date         time.Time
	Principal    model.Principal
}

// Create сохраняет документ и отправляет запрос на генерацию во внешний
// workflow. Сбой отправки не отменяет создание: документ остаётся в базе
// со статусом FAILED, и вызывающая сторона получает его как результат.
func (s *DocumentService) Create(ctx context.Context, input CreateDocumentInput) (*model.Document, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: invalid document type", ErrInvalidInput)
	}
	if input.CustomerID == uuid.Nil || input.ContractorID == uuid.Nil {
		return nil, fmt.Errorf("%w: customer ID and contractor ID are required", ErrInvalidInput)
	}
	if input.Amount == 0 {
		return nil, fmt.Errorf("%w: amount is required", ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	customer, err := s.contractors.GetByID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer not found", ErrNotFound)
		}
		return nil, err
	}
	contractor, err := s.contractors.GetByID(ctx, input.ContractorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: contractor not found", ErrNotFound)
		}
		return nil, err
	}

	doc := &model.Document{
		Type:         input.Type,
		CustomerID:   customer.ID,
		ContractorID: contractor.ID,
		Amount:       input.Amount,
		Date:         input.Date,
		Status:       model.DocumentStatusPending,
		CreatedBy:    input.Principal.ID,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}

	payload := render.BuildPayload(doc, customer, contractor)
	if err := s.dispatcher.Dispatch(ctx, payload); err != nil {
		s.log.Warn().Err(err).Str("document_id", doc.ID.String()).Msg("webhook dispatch failed")
		if _, err := s.docs.UpdateStatusFrom(ctx, doc.ID, model.DocumentStatusFailed,
			model.DocumentStatusPending, model.DocumentStatusProcessing); err != nil {
			return nil, err
		}
	} else {
		// Колбэк мог успеть завершить документ; статус PROCESSING ставится
		// только из PENDING.
		if _, err := s.docs.UpdateStatusFrom(ctx, doc.ID, model.DocumentStatusProcessing,
			model.DocumentStatusPending); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, doc.ID)
}

type CallbackInput struct {
	Status      string
	DocumentURL string
	RawBody     string
}

// HandleCallback применяет результат внешнего workflow. Колбэк для
// неизвестного документа отклоняется, для уже завершённого — конфликт.
func (s *DocumentService) HandleCallback(ctx context.Context, id uuid.UUID, input CallbackInput) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	target := model.DocumentStatusFailed
	if input.Status == "success" {
		target = model.DocumentStatusCompleted
	}

	applied, err := s.docs.Finalize(ctx, id, target, input.RawBody, input.DocumentURL)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("%w: document already finalized", ErrConflict)
	}

	s.log.Info().
		Str("document_id", id.String()).
		Str("status", string(target)).
		Msg("document callback applied")
	return nil
}

// Download возвращает URL готового документа. Разрешён только из статуса COMPLETED.
func (s *DocumentService) Download(ctx context.Context, id uuid.UUID) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if doc.Status != model.DocumentStatusCompleted {
		return "", fmt.Errorf("%w: document is not ready for download", ErrInvalidState)
	}
	if doc.DocumentURL == "" {
		return "", fmt.Errorf("%w: document URL not available", ErrInvalidState)
	}
	return doc.DocumentURL, nil
}

// Delete удаляет документ. Разрешено только его создателю.
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID, principal model.Principal) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if doc.CreatedBy != principal.ID {
		return fmt.Errorf("%w: access denied", ErrPermissionDenied)
	}
	return s.docs.Delete(ctx, id)
}

// Types перечисляет поддерживаемые типы документов с подписями.
func (s *DocumentService) Types() []DocumentTypeOption {
	return []DocumentTypeOption{
		{Value: model.DocumentTypeShipment, Label: model.DocumentTypeShipment.Label()},
		{Value: model.DocumentTypeRental, Label: model.DocumentTypeRental.Label()},
	}
}

type DocumentTypeOption struct {
	Value model.DocumentType `json:"value"`
	Label string             `json:"label"`
}
