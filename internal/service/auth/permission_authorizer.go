package auth

import (
	"context"
	"fmt"

	"docvault/internal/domain"
	models "docvault/internal/domain/models/docsystem"
	docsysRepo "docvault/internal/domain/repositories/docsystem"
	"docvault/internal/domain/services"
	docsysSvc "docvault/internal/domain/services/docsystem"
)

// PermissionAuthorizer implements ResourceAuthorizer on top of the
// per-document access lists. The document owner always passes.
type PermissionAuthorizer struct {
	docRepo docsysRepo.DocumentRepository
	query   docsysSvc.QueryService
}

// NewPermissionAuthorizer creates a new access-list based authorizer
func NewPermissionAuthorizer(
	docRepo docsysRepo.DocumentRepository,
	query docsysSvc.QueryService,
) *PermissionAuthorizer {
	return &PermissionAuthorizer{
		docRepo: docRepo,
		query:   query,
	}
}

var _ services.ResourceAuthorizer = (*PermissionAuthorizer)(nil)

// CanAccessDocument checks that userID holds at least level on the document
func (a *PermissionAuthorizer) CanAccessDocument(ctx context.Context, userID, documentID string, level models.PermissionLevel) error {
	// Distinguish a missing document from a denied one
	if _, err := a.docRepo.GetByID(ctx, documentID); err != nil {
		return fmt.Errorf("get document for auth: %w", err)
	}

	allowed, err := a.query.HasPermission(ctx, documentID, userID, level)
	if err != nil {
		return fmt.Errorf("check document access: %w", err)
	}
	if !allowed {
		return &domain.ForbiddenError{
			Message: fmt.Sprintf("user %q needs %s access to document %q", userID, level, documentID),
		}
	}
	return nil
}
