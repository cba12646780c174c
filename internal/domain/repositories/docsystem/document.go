package docsystem

import (
	"context"

	"docvault/internal/domain/models/docsystem"
)

// DocumentRepository defines data access operations for documents.
// Every returned document is a copy; mutate it and call Update to persist.
type DocumentRepository interface {
	// Create stores a new document, assigning ID and timestamps when empty
	Create(ctx context.Context, doc *docsystem.Document) error

	// GetByID retrieves a document by ID
	GetByID(ctx context.Context, id string) (*docsystem.Document, error)

	// Update replaces an existing document (matched by ID)
	Update(ctx context.Context, doc *docsystem.Document) error

	// Delete removes a document; reports whether it existed
	Delete(ctx context.Context, id string) (bool, error)

	// ListByFolder lists documents directly in a folder (nil = root)
	ListByFolder(ctx context.Context, folderID *string) ([]docsystem.Document, error)

	// ListAll lists every document in creation order
	ListAll(ctx context.Context) ([]docsystem.Document, error)

	// DetachFromFolders moves documents of the given folders to root.
	// Returns how many documents were moved.
	DetachFromFolders(ctx context.Context, folderIDs []string) (int, error)

	// RemoveTag drops a tag id from every document. Returns how many documents changed.
	RemoveTag(ctx context.Context, tagID string) (int, error)
}
