package docsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"docvault/internal/config"
	"docvault/internal/domain"
	models "docvault/internal/domain/models/docsystem"
	"docvault/internal/domain/repositories"
	docsysRepo "docvault/internal/domain/repositories/docsystem"
	docsysSvc "docvault/internal/domain/services/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

type folderService struct {
	folderRepo docsysRepo.FolderRepository
	docRepo    docsysRepo.DocumentRepository
	txManager  repositories.TransactionManager
	validator  *ResourceValidator
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo docsysRepo.FolderRepository,
	docRepo docsysRepo.DocumentRepository,
	txManager repositories.TransactionManager,
	validator *ResourceValidator,
	logger *slog.Logger,
) docsysSvc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		txManager:  txManager,
		validator:  validator,
		logger:     logger,
	}
}

// CreateFolder creates a new folder under an existing parent
func (s *folderService) CreateFolder(ctx context.Context, req *docsysSvc.CreateFolderRequest) (*models.Folder, error) {
	req.ParentID = models.NormalizeFolderID(req.ParentID)
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	folder := &models.Folder{
		ParentID:  req.ParentID,
		Name:      req.Name,
		OwnerID:   req.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.validator.ValidateUser(txCtx, req.OwnerID); err != nil {
			return err
		}
		if err := s.validator.ValidateFolder(txCtx, "parent_id", req.ParentID); err != nil {
			return err
		}
		return s.folderRepo.Create(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.withPath(ctx, folder)

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// GetFolder retrieves a folder with its computed path
func (s *folderService) GetFolder(ctx context.Context, folderID string) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	s.withPath(ctx, folder)
	return folder, nil
}

// UpdateFolder updates a folder (rename or move)
func (s *folderService) UpdateFolder(ctx context.Context, folderID string, req *docsysSvc.UpdateFolderRequest) (*models.Folder, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		folder, err = s.folderRepo.GetByID(txCtx, folderID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			folder.Name = strings.TrimSpace(*req.Name)
		}

		// Tri-state: only update location if field was present in request
		if req.ParentID.Present {
			target := models.NormalizeFolderID(req.ParentID.Value)
			if target != nil {
				if err := s.validator.ValidateFolder(txCtx, "parent_id", target); err != nil {
					return err
				}
				// Prevent circular references (can't move folder below itself)
				if err := s.validateNoCircularReference(txCtx, folderID, *target); err != nil {
					return err
				}
				s.logger.Debug("moving folder to new parent", "folder_id", folderID, "parent_id", *target)
			} else {
				s.logger.Debug("moving folder to root", "folder_id", folderID)
			}
			folder.ParentID = target
		}

		folder.UpdatedAt = time.Now()
		return s.folderRepo.Update(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.withPath(ctx, folder)

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// DeleteFolder deletes a folder and all descendant folders. Their documents
// are detached to root, never deleted. A parent cycle below the folder
// aborts the whole operation with an InvariantViolation.
func (s *folderService) DeleteFolder(ctx context.Context, folderID string) (bool, error) {
	var removed []string
	var detached int
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.folderRepo.GetByID(txCtx, folderID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}

		all, err := s.folderRepo.GetAll(txCtx)
		if err != nil {
			return fmt.Errorf("failed to list folders: %w", err)
		}
		if removed, err = collectDescendants(folderID, all); err != nil {
			return err
		}

		if _, err := s.folderRepo.DeleteMany(txCtx, removed); err != nil {
			return fmt.Errorf("failed to delete folders: %w", err)
		}
		if detached, err = s.docRepo.DetachFromFolders(txCtx, removed); err != nil {
			return fmt.Errorf("failed to detach documents: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if len(removed) == 0 {
		return false, nil
	}

	s.logger.Info("folder deleted",
		"id", folderID,
		"folders_removed", len(removed),
		"documents_detached", detached,
	)

	return true, nil
}

// collectDescendants returns folderID followed by every folder below it.
// Reaching an already collected folder means the parent graph has a cycle.
func collectDescendants(folderID string, all []models.Folder) ([]string, error) {
	children := make(map[string][]string, len(all))
	for _, f := range all {
		if f.ParentID != nil {
			children[*f.ParentID] = append(children[*f.ParentID], f.ID)
		}
	}

	collected := []string{folderID}
	seen := map[string]struct{}{folderID: {}}
	for i := 0; i < len(collected); i++ {
		for _, child := range children[collected[i]] {
			if _, dup := seen[child]; dup {
				return nil, &domain.InvariantViolationError{
					Message: fmt.Sprintf("folder cycle detected below %q at %q", folderID, child),
				}
			}
			seen[child] = struct{}{}
			collected = append(collected, child)
		}
	}
	return collected, nil
}

// ListChildren lists all child folders and documents in a folder
func (s *folderService) ListChildren(ctx context.Context, folderID *string) (*docsysSvc.FolderContents, error) {
	folderID = models.NormalizeFolderID(folderID)

	var folder *models.Folder
	if folderID != nil {
		var err error
		folder, err = s.folderRepo.GetByID(ctx, *folderID)
		if err != nil {
			return nil, err
		}
		s.withPath(ctx, folder)
	}

	childFolders, err := s.folderRepo.ListChildren(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list child folders: %w", err)
	}

	docs, err := s.docRepo.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	for i := range docs {
		if err := s.validator.ResolveTags(ctx, &docs[i]); err != nil {
			return nil, fmt.Errorf("resolve tags: %w", err)
		}
	}

	return &docsysSvc.FolderContents{
		Folder:    folder,
		Folders:   childFolders,
		Documents: docs,
	}, nil
}

// withPath computes the display path, falling back to the bare name
func (s *folderService) withPath(ctx context.Context, folder *models.Folder) {
	path, err := s.folderRepo.GetPath(ctx, folder.ID)
	if err != nil {
		s.logger.Warn("failed to compute path", "folder_id", folder.ID, "error", err)
		folder.Path = folder.Name
		return
	}
	folder.Path = path
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *docsysSvc.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
		),
	)
}

// validateUpdateRequest validates a folder update request
func (s *folderService) validateUpdateRequest(req *docsysSvc.UpdateFolderRequest) error {
	// At least one field must be provided
	if req.Name == nil && !req.ParentID.Present {
		return fmt.Errorf("at least one field must be provided")
	}
	if req.Name == nil {
		return nil
	}
	return validation.Validate(strings.TrimSpace(*req.Name),
		validation.Required.Error("name cannot be blank"),
		validation.Length(1, config.MaxFolderNameLength),
		validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
	)
}

// validateNoCircularReference ensures moving a folder won't create circular references
func (s *folderService) validateNoCircularReference(ctx context.Context, folderID, newParentID string) error {
	// Can't move folder to be its own parent
	if folderID == newParentID {
		return domain.NewValidation("parent_id", "cannot move folder to be its own parent")
	}

	// Walk up from the new parent; meeting folderID means it is a descendant
	visited := make(map[string]struct{})
	currentID := newParentID
	for {
		if _, seen := visited[currentID]; seen {
			return &domain.InvariantViolationError{
				Message: fmt.Sprintf("folder cycle detected at %q", currentID),
			}
		}
		visited[currentID] = struct{}{}

		parent, err := s.folderRepo.GetByID(ctx, currentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Dangling parent: the chain ends here
				return nil
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == folderID {
			return domain.NewValidation("parent_id", "cannot move folder to be a child of its own descendant")
		}
		currentID = *parent.ParentID
	}
}
