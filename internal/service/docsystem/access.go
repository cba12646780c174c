package docsystem

import (
	"context"
	"log/slog"
	"time"

	"docvault/internal/domain"
	models "docvault/internal/domain/models/docsystem"
	"docvault/internal/domain/repositories"
	docsysRepo "docvault/internal/domain/repositories/docsystem"
	docsysSvc "docvault/internal/domain/services/docsystem"
)

type accessService struct {
	docRepo   docsysRepo.DocumentRepository
	userRepo  docsysRepo.UserRepository
	txManager repositories.TransactionManager
	validator *ResourceValidator
	logger    *slog.Logger
}

// NewAccessService creates a new access service
func NewAccessService(
	docRepo docsysRepo.DocumentRepository,
	userRepo docsysRepo.UserRepository,
	txManager repositories.TransactionManager,
	validator *ResourceValidator,
	logger *slog.Logger,
) docsysSvc.AccessService {
	return &accessService{
		docRepo:   docRepo,
		userRepo:  userRepo,
		txManager: txManager,
		validator: validator,
		logger:    logger,
	}
}

// SetAccess upserts the user's entry on the document's access list
func (s *accessService) SetAccess(ctx context.Context, documentID, userID string, level models.PermissionLevel) ([]models.AccessControlEntry, error) {
	if !level.Valid() {
		return nil, domain.NewValidation("permission_level", "unknown permission level %q", level)
	}
	// An entry always grants something; revoking goes through RemoveAccess
	if level == models.PermissionNone {
		return nil, domain.NewValidation("permission_level", "level %q cannot be granted, remove the entry instead", level)
	}

	var doc *models.Document
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		doc, err = s.docRepo.GetByID(txCtx, documentID)
		if err != nil {
			return err
		}

		user, err := s.validator.ValidateUser(txCtx, userID)
		if err != nil {
			return err
		}

		if userID == doc.OwnerID && level != models.PermissionAdmin {
			return domain.NewValidation("permission_level", "the owner's access cannot be lowered below admin")
		}

		entry := models.AccessControlEntry{UserID: user.ID, UserName: user.Name, Level: level}
		replaced := false
		for i := range doc.AccessList {
			if doc.AccessList[i].UserID == userID {
				doc.AccessList[i] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			doc.AccessList = append(doc.AccessList, entry)
		}

		doc.UpdatedAt = time.Now()
		return s.docRepo.Update(txCtx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("access set",
		"doc_id", documentID,
		"user_id", userID,
		"permission_level", level,
	)

	return doc.AccessList, nil
}

// RemoveAccess drops the user's entry. The owner's entry cannot be removed.
func (s *accessService) RemoveAccess(ctx context.Context, documentID, userID string) (bool, error) {
	removed := false
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docRepo.GetByID(txCtx, documentID)
		if err != nil {
			return err
		}
		if userID == doc.OwnerID {
			return domain.NewValidation("user_id", "the owner's access cannot be removed")
		}

		kept := make([]models.AccessControlEntry, 0, len(doc.AccessList))
		for _, entry := range doc.AccessList {
			if entry.UserID == userID {
				removed = true
				continue
			}
			kept = append(kept, entry)
		}
		if !removed {
			return nil
		}

		doc.AccessList = kept
		doc.UpdatedAt = time.Now()
		return s.docRepo.Update(txCtx, doc)
	})
	if err != nil {
		return false, err
	}

	if removed {
		s.logger.Info("access removed", "doc_id", documentID, "user_id", userID)
	}
	return removed, nil
}

func (s *accessService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}
