package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"docvault/internal/config"
	"docvault/internal/domain"
	models "docvault/internal/domain/models/docsystem"
	"docvault/internal/domain/repositories"
	docsysRepo "docvault/internal/domain/repositories/docsystem"
	docsysSvc "docvault/internal/domain/services/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// tagColorPattern accepts #rgb, #rrggbb or a lower-case CSS color name
var tagColorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|[a-z]+)$`)

type tagService struct {
	tagRepo   docsysRepo.TagRepository
	docRepo   docsysRepo.DocumentRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewTagService creates a new tag service
func NewTagService(
	tagRepo docsysRepo.TagRepository,
	docRepo docsysRepo.DocumentRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) docsysSvc.TagService {
	return &tagService{
		tagRepo:   tagRepo,
		docRepo:   docRepo,
		txManager: txManager,
		logger:    logger,
	}
}

func (s *tagService) CreateTag(ctx context.Context, req *docsysSvc.CreateTagRequest) (*models.Tag, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Color = strings.TrimSpace(req.Color)
	if req.Color == "" {
		req.Color = models.DefaultTagColor
	}

	err := validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxTagNameLength),
			validation.Match(regexp.MustCompile(`^[^:]+$`)).Error("tag name cannot contain ':'"),
		),
		validation.Field(&req.Color, validation.Match(tagColorPattern).Error("must be a hex color or color name")),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	tag := &models.Tag{Name: req.Name, Color: req.Color}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("tag created", "id", tag.ID, "name", tag.Name, "color", tag.Color)
	return tag, nil
}

func (s *tagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.GetAll(ctx)
}

// DeleteTag removes the tag from the catalog and from every document
func (s *tagService) DeleteTag(ctx context.Context, id string) (bool, error) {
	var existed bool
	var detached int
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		if existed, err = s.tagRepo.Delete(txCtx, id); err != nil || !existed {
			return err
		}
		detached, err = s.docRepo.RemoveTag(txCtx, id)
		return err
	})
	if err != nil {
		return false, err
	}

	if existed {
		s.logger.Info("tag deleted", "id", id, "documents_updated", detached)
	}
	return existed, nil
}
