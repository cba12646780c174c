package docsystem

import (
	"context"

	"docvault/internal/domain/models/docsystem"
)

// AccessService manages per-document access lists and the known user set
type AccessService interface {
	// SetAccess upserts the user's entry. Fails with UnknownUser for users
	// outside the known set; the owner's entry can never drop below admin.
	SetAccess(ctx context.Context, documentID, userID string, level docsystem.PermissionLevel) ([]docsystem.AccessControlEntry, error)

	// RemoveAccess drops the user's entry. The owner's entry cannot be removed.
	// Reports whether an entry existed.
	RemoveAccess(ctx context.Context, documentID, userID string) (bool, error)

	// ListUsers returns the known user set
	ListUsers(ctx context.Context) ([]docsystem.User, error)
}
