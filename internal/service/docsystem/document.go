package docsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"docvault/internal/config"
	"docvault/internal/domain"
	models "docvault/internal/domain/models/docsystem"
	"docvault/internal/domain/repositories"
	docsysRepo "docvault/internal/domain/repositories/docsystem"
	docsysSvc "docvault/internal/domain/services/docsystem"
	"docvault/internal/service/docsystem/extractor"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// documentService implements the DocumentService interface
type documentService struct {
	docRepo    docsysRepo.DocumentRepository
	blobRepo   docsysRepo.BlobRepository
	txManager  repositories.TransactionManager
	extractors *extractor.Registry
	validator  *ResourceValidator
	logger     *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo docsysRepo.DocumentRepository,
	blobRepo docsysRepo.BlobRepository,
	txManager repositories.TransactionManager,
	extractors *extractor.Registry,
	validator *ResourceValidator,
	logger *slog.Logger,
) docsysSvc.DocumentService {
	return &documentService{
		docRepo:    docRepo,
		blobRepo:   blobRepo,
		txManager:  txManager,
		extractors: extractors,
		validator:  validator,
		logger:     logger,
	}
}

// CreateDocument stores the content as version 1 and creates the document.
// Folder, tags and owner are checked inside the same transaction as the
// writes, so a failure leaves no blob or document behind.
func (s *documentService) CreateDocument(ctx context.Context, req *docsysSvc.CreateDocumentRequest) (*models.Document, error) {
	req.FolderID = models.NormalizeFolderID(req.FolderID)
	req.Name = strings.TrimSpace(req.Name)
	if req.Filename == "" {
		req.Filename = req.Name
	}
	if req.Name == "" {
		req.Name = filepath.Base(req.Filename)
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	mimeType, err := ValidateUploadFilename(req.Filename)
	if err != nil {
		return nil, err
	}

	content, pages := s.extract(ctx, req.Filename, req.Data, req.Content)

	now := time.Now()
	doc := &models.Document{
		ID:             uuid.NewString(),
		Name:           req.Name,
		MimeType:       mimeType,
		Size:           int64(len(req.Data)),
		Content:        content,
		Pages:          pages,
		FolderID:       req.FolderID,
		OwnerID:        req.OwnerID,
		TagIDs:         append([]string(nil), req.TagIDs...),
		CurrentVersion: 1,
		Annotations:    []models.Annotation{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		owner, err := s.validator.ValidateUser(txCtx, req.OwnerID)
		if err != nil {
			return err
		}
		if err := s.validator.ValidateFolder(txCtx, "folder_id", req.FolderID); err != nil {
			return err
		}
		if err := s.validator.ValidateTags(txCtx, req.TagIDs); err != nil {
			return err
		}

		ref, err := s.blobRepo.Put(txCtx, req.Data, mimeType)
		if err != nil {
			return fmt.Errorf("store content: %w", err)
		}
		doc.ContentRef = ref
		doc.Versions = []models.DocumentVersion{{
			ID:            uuid.NewString(),
			DocumentID:    doc.ID,
			VersionNumber: 1,
			ContentRef:    ref,
			Size:          doc.Size,
			CreatedBy:     owner.ID,
			CreatedAt:     now,
			Notes:         req.Notes,
		}}
		doc.AccessList = []models.AccessControlEntry{{
			UserID:   owner.ID,
			UserName: owner.Name,
			Level:    models.PermissionAdmin,
		}}

		return s.docRepo.Create(txCtx, doc)
	})
	if err != nil {
		return nil, err
	}

	if err := s.validator.ResolveTags(ctx, doc); err != nil {
		s.logger.Warn("failed to resolve tags", "doc_id", doc.ID, "error", err)
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"name", doc.Name,
		"folder_id", doc.FolderID,
		"owner_id", doc.OwnerID,
		"size", doc.Size,
	)

	return doc, nil
}

// GetDocument retrieves a document with its tags resolved
func (s *documentService) GetDocument(ctx context.Context, documentID string) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ResolveTags(ctx, doc); err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}
	return doc, nil
}

// UpdateDocument merges the provided fields. The id is never changed.
func (s *documentService) UpdateDocument(ctx context.Context, documentID string, req *docsysSvc.UpdateDocumentRequest) (*models.Document, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var doc *models.Document
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		doc, err = s.docRepo.GetByID(txCtx, documentID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			doc.Name = strings.TrimSpace(*req.Name)
		}

		// Tri-state: only move if the field was present in the request
		if req.FolderID.Present {
			target := models.NormalizeFolderID(req.FolderID.Value)
			if err := s.validator.ValidateFolder(txCtx, "folder_id", target); err != nil {
				return err
			}
			doc.FolderID = target
			s.logger.Debug("moving document", "doc_id", documentID, "folder_id", target)
		}

		if req.TagIDs != nil {
			if err := s.validator.ValidateTags(txCtx, *req.TagIDs); err != nil {
				return err
			}
			doc.TagIDs = append([]string{}, *req.TagIDs...)
		}

		if req.Content != nil {
			doc.Content = *req.Content
			doc.Pages = nil
		}

		doc.UpdatedAt = time.Now()
		return s.docRepo.Update(txCtx, doc)
	})
	if err != nil {
		return nil, err
	}

	if err := s.validator.ResolveTags(ctx, doc); err != nil {
		s.logger.Warn("failed to resolve tags", "doc_id", doc.ID, "error", err)
	}

	s.logger.Info("document updated",
		"id", doc.ID,
		"name", doc.Name,
		"folder_id", doc.FolderID,
		"tag_ids", doc.TagIDs,
	)

	return doc, nil
}

// DeleteDocument removes a document together with the blobs of all its versions
func (s *documentService) DeleteDocument(ctx context.Context, documentID string) (bool, error) {
	existed := false
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docRepo.GetByID(txCtx, documentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}

		if existed, err = s.docRepo.Delete(txCtx, documentID); err != nil {
			return err
		}
		for _, v := range doc.Versions {
			if _, err := s.blobRepo.Delete(txCtx, v.ContentRef); err != nil {
				return fmt.Errorf("delete version %d content: %w", v.VersionNumber, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if existed {
		s.logger.Info("document deleted", "id", documentID)
	}
	return existed, nil
}

// AddVersion appends version max(existing)+1 and makes it current
func (s *documentService) AddVersion(ctx context.Context, documentID string, req *docsysSvc.AddVersionRequest) (*models.DocumentVersion, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Notes, validation.Length(0, config.MaxVersionNotesLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	mimeType := ""
	if req.Filename != "" {
		var err error
		if mimeType, err = ValidateUploadFilename(req.Filename); err != nil {
			return nil, err
		}
	}

	var version models.DocumentVersion
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docRepo.GetByID(txCtx, documentID)
		if err != nil {
			return err
		}

		filename := req.Filename
		if filename == "" {
			filename = doc.Name
			mimeType = doc.MimeType
		}
		content, pages := s.extract(txCtx, filename, req.Data, req.Content)

		ref, err := s.blobRepo.Put(txCtx, req.Data, mimeType)
		if err != nil {
			return fmt.Errorf("store content: %w", err)
		}

		now := time.Now()
		version = models.DocumentVersion{
			ID:            uuid.NewString(),
			DocumentID:    doc.ID,
			VersionNumber: doc.NextVersionNumber(),
			ContentRef:    ref,
			Size:          int64(len(req.Data)),
			CreatedBy:     req.CreatedBy,
			CreatedAt:     now,
			Notes:         req.Notes,
		}
		doc.Versions = append(doc.Versions, version)
		doc.CurrentVersion = version.VersionNumber
		doc.ContentRef = ref
		doc.Size = version.Size
		doc.MimeType = mimeType
		if content != "" || pages != nil || req.Content != nil {
			doc.Content = content
			doc.Pages = pages
		}
		doc.UpdatedAt = now

		return s.docRepo.Update(txCtx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document version added",
		"doc_id", documentID,
		"version", version.VersionNumber,
		"size", version.Size,
		"created_by", version.CreatedBy,
	)

	return &version, nil
}

// ListVersions lists versions in creation order
func (s *documentService) ListVersions(ctx context.Context, documentID string) ([]models.DocumentVersion, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Versions == nil {
		return []models.DocumentVersion{}, nil
	}
	return doc.Versions, nil
}

// GetContent dereferences the blob of a version (0 = current)
func (s *documentService) GetContent(ctx context.Context, documentID string, version int) (*models.Blob, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	ref := doc.ContentRef
	if version != 0 {
		v := doc.Version(version)
		if v == nil {
			return nil, domain.NewNotFound("version", strconv.Itoa(version))
		}
		ref = v.ContentRef
	}

	blob, err := s.blobRepo.Get(ctx, ref)
	if err != nil {
		s.logger.Warn("document content unreadable", "doc_id", documentID, "ref", ref, "error", err)
		return nil, err
	}
	return blob, nil
}

// SetPageText stores per-page extracted text and rebuilds the searchable
// content by joining pages in page order
func (s *documentService) SetPageText(ctx context.Context, documentID string, pages map[int]string) (*models.Document, error) {
	for page := range pages {
		if page < 1 {
			return nil, domain.NewValidation("pages", "page numbers start at 1, got %d", page)
		}
	}

	var doc *models.Document
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		doc, err = s.docRepo.GetByID(txCtx, documentID)
		if err != nil {
			return err
		}

		doc.Pages = make(map[int]string, len(pages))
		for page, text := range pages {
			doc.Pages[page] = text
		}
		doc.Content = models.JoinPages(doc.Pages)
		doc.UpdatedAt = time.Now()
		return s.docRepo.Update(txCtx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document page text set", "doc_id", documentID, "pages", len(pages))
	return doc, nil
}

// extract returns the searchable text. An explicit override wins; otherwise
// the registered extractor runs. Extraction failures only cost searchability.
func (s *documentService) extract(ctx context.Context, filename string, data []byte, override *string) (string, map[int]string) {
	if override != nil {
		return *override, nil
	}
	pages, err := s.extractors.Extract(ctx, filename, data)
	if err != nil {
		s.logger.Warn("text extraction failed", "filename", filename, "error", err)
		return "", nil
	}
	if pages == nil {
		return "", nil
	}
	return models.JoinPages(pages), pages
}

// validateCreateRequest validates a document creation request
func (s *documentService) validateCreateRequest(req *docsysSvc.CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxDocumentNameLength),
		),
		validation.Field(&req.Filename, validation.Required),
		validation.Field(&req.Notes, validation.Length(0, config.MaxVersionNotesLength)),
	)
}

// validateUpdateRequest validates a document update request
func (s *documentService) validateUpdateRequest(req *docsysSvc.UpdateDocumentRequest) error {
	// At least one field must be provided
	if req.Name == nil && !req.FolderID.Present && req.TagIDs == nil && req.Content == nil {
		return fmt.Errorf("at least one field must be provided")
	}

	if req.Name == nil {
		return nil
	}
	name := strings.TrimSpace(*req.Name)
	return validation.Validate(name,
		validation.Required.Error("name cannot be blank"),
		validation.Length(1, config.MaxDocumentNameLength),
	)
}
