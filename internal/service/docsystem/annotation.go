package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"docvault/internal/config"
	"docvault/internal/domain"
	models "docvault/internal/domain/models/docsystem"
	"docvault/internal/domain/repositories"
	docsysRepo "docvault/internal/domain/repositories/docsystem"
	docsysSvc "docvault/internal/domain/services/docsystem"
	"docvault/internal/service/docsystem/extractor/sanitizer"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type annotationService struct {
	docRepo   docsysRepo.DocumentRepository
	txManager repositories.TransactionManager
	sanitizer *sanitizer.TextSanitizer
	logger    *slog.Logger
}

// NewAnnotationService creates a new annotation service.
// Annotation content is plain text: all markup is stripped before storing.
func NewAnnotationService(
	docRepo docsysRepo.DocumentRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) docsysSvc.AnnotationService {
	return &annotationService{
		docRepo:   docRepo,
		txManager: txManager,
		sanitizer: sanitizer.NewTextSanitizer(),
		logger:    logger,
	}
}

func (s *annotationService) AddAnnotation(ctx context.Context, documentID string, req *docsysSvc.AddAnnotationRequest) (*models.Annotation, error) {
	if err := s.validateAddRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	annotation := models.Annotation{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Page:       req.Page,
		Kind:       req.Kind,
		Content:    s.sanitizer.Sanitize(req.Content),
		Position:   req.Position.Clone(),
		CreatedBy:  req.CreatedBy,
		CreatedAt:  time.Now(),
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docRepo.GetByID(txCtx, documentID)
		if err != nil {
			return err
		}
		doc.Annotations = append(doc.Annotations, annotation)
		doc.UpdatedAt = annotation.CreatedAt
		return s.docRepo.Update(txCtx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("annotation added",
		"id", annotation.ID,
		"doc_id", documentID,
		"page", annotation.Page,
		"kind", annotation.Kind,
	)

	return &annotation, nil
}

// RemoveAnnotation is idempotent. The document itself must exist.
func (s *annotationService) RemoveAnnotation(ctx context.Context, documentID, annotationID string) (bool, error) {
	removed := false
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docRepo.GetByID(txCtx, documentID)
		if err != nil {
			return err
		}

		kept := make([]models.Annotation, 0, len(doc.Annotations))
		for _, a := range doc.Annotations {
			if a.ID == annotationID {
				removed = true
				continue
			}
			kept = append(kept, a)
		}
		if !removed {
			return nil
		}

		doc.Annotations = kept
		doc.UpdatedAt = time.Now()
		return s.docRepo.Update(txCtx, doc)
	})
	if err != nil {
		return false, err
	}

	if removed {
		s.logger.Info("annotation removed", "id", annotationID, "doc_id", documentID)
	} else {
		s.logger.Debug("annotation not found", "id", annotationID, "doc_id", documentID)
	}
	return removed, nil
}

func (s *annotationService) ListAnnotations(ctx context.Context, documentID string, page int) ([]models.Annotation, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	annotations := make([]models.Annotation, 0, len(doc.Annotations))
	for _, a := range doc.Annotations {
		if page == 0 || a.Page == page {
			annotations = append(annotations, a)
		}
	}
	return annotations, nil
}

func (s *annotationService) validateAddRequest(req *docsysSvc.AddAnnotationRequest) error {
	kinds := make([]interface{}, 0, 4)
	for _, k := range models.AnnotationKinds() {
		kinds = append(kinds, k)
	}
	needsText := req.Kind == models.AnnotationComment || req.Kind == models.AnnotationNote

	return validation.ValidateStruct(req,
		validation.Field(&req.CreatedBy, validation.Required),
		validation.Field(&req.Page, validation.Required, validation.Min(1)),
		validation.Field(&req.Kind, validation.Required, validation.In(kinds...)),
		validation.Field(&req.Content,
			validation.When(needsText, validation.Required),
			validation.Length(0, config.MaxAnnotationLength),
		),
	)
}
