package docsystem

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"docvault/internal/config"
	"docvault/internal/domain"
	models "docvault/internal/domain/models/docsystem"
	docsysRepo "docvault/internal/domain/repositories/docsystem"
)

// ResourceValidator checks that referenced folders, tags and users exist
// before an operation stores a reference to them
type ResourceValidator struct {
	folderRepo docsysRepo.FolderRepository
	tagRepo    docsysRepo.TagRepository
	userRepo   docsysRepo.UserRepository
}

// NewResourceValidator creates a new resource validator
func NewResourceValidator(
	folderRepo docsysRepo.FolderRepository,
	tagRepo docsysRepo.TagRepository,
	userRepo docsysRepo.UserRepository,
) *ResourceValidator {
	return &ResourceValidator{
		folderRepo: folderRepo,
		tagRepo:    tagRepo,
		userRepo:   userRepo,
	}
}

// ValidateFolder ensures a folder exists.
// Returns nil for nil (root is always valid) and a ValidationError for a missing folder.
func (v *ResourceValidator) ValidateFolder(ctx context.Context, field string, folderID *string) error {
	if folderID == nil {
		return nil
	}
	if _, err := v.folderRepo.GetByID(ctx, *folderID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidation(field, "folder %q does not exist", *folderID)
		}
		return fmt.Errorf("invalid folder: %w", err)
	}
	return nil
}

// ValidateTags ensures every tag id exists and none repeats
func (v *ResourceValidator) ValidateTags(ctx context.Context, tagIDs []string) error {
	seen := make(map[string]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		if _, dup := seen[id]; dup {
			return domain.NewValidation("tag_ids", "tag %q listed twice", id)
		}
		seen[id] = struct{}{}

		if _, err := v.tagRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NewValidation("tag_ids", "tag %q does not exist", id)
			}
			return fmt.Errorf("invalid tag: %w", err)
		}
	}
	return nil
}

// ValidateUser ensures the user is part of the known user set
func (v *ResourceValidator) ValidateUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := v.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.UnknownUserError{UserID: userID}
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	return user, nil
}

// ResolveTags fills doc.Tags from doc.TagIDs. Dangling ids are skipped.
func (v *ResourceValidator) ResolveTags(ctx context.Context, doc *models.Document) error {
	if len(doc.TagIDs) == 0 {
		doc.Tags = nil
		return nil
	}
	all, err := v.tagRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	resolveTags(doc, indexTags(all))
	return nil
}

func indexTags(tags []models.Tag) map[string]models.Tag {
	byID := make(map[string]models.Tag, len(tags))
	for _, t := range tags {
		byID[t.ID] = t
	}
	return byID
}

func resolveTags(doc *models.Document, byID map[string]models.Tag) {
	doc.Tags = make([]models.Tag, 0, len(doc.TagIDs))
	for _, id := range doc.TagIDs {
		if t, ok := byID[id]; ok {
			doc.Tags = append(doc.Tags, t)
		}
	}
}

// ValidateUploadFilename checks the extension allow-list and returns the MIME type
func ValidateUploadFilename(filename string) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", domain.NewValidation("file", "file name is required")
	}
	mimeType, ok := config.UploadMimeType(filename)
	if !ok {
		return "", domain.NewValidation("file", "file type %q is not allowed (allowed: %s)",
			filepath.Ext(filename), strings.Join(config.AllowedUploadExtensions(), ", "))
	}
	return mimeType, nil
}

// ValidateUploadSize checks a byte count against the ceiling
func ValidateUploadSize(size, maxBytes int64) error {
	if size > maxBytes {
		return domain.NewValidation("file", "file is %d bytes, larger than the %d byte limit", size, maxBytes)
	}
	return nil
}
