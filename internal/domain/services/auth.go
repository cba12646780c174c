package services

import (
	"context"

	"docvault/internal/domain/models/docsystem"
)

// ResourceAuthorizer checks if a user can act on a document.
// Handlers call it before operating on a document; services stay
// permission-agnostic.
type ResourceAuthorizer interface {
	// CanAccessDocument returns nil when userID holds at least level on the
	// document, domain.ErrForbidden when not, and domain.ErrNotFound when the
	// document does not exist.
	CanAccessDocument(ctx context.Context, userID, documentID string, level docsystem.PermissionLevel) error
}
