package docsystem

import (
	"context"

	"docvault/internal/domain/models/docsystem"
)

// QueryService derives read-only views from the current store state.
// Nothing is cached; every call reflects the latest mutations.
type QueryService interface {
	// DocumentsInFolder lists documents directly in a folder (nil, "" or "root" = top level)
	DocumentsInFolder(ctx context.Context, folderID *string) ([]docsystem.Document, error)

	// Subfolders lists folders whose parent is parentID (nil = top level)
	Subfolders(ctx context.Context, parentID *string) ([]docsystem.Folder, error)

	// Breadcrumbs returns the ancestor chain [root-most, ..., folderID]
	Breadcrumbs(ctx context.Context, folderID string) ([]docsystem.Breadcrumb, error)

	// Search runs a text or "tag:" search. A blank query yields no results.
	Search(ctx context.Context, opts *docsystem.SearchOptions) (*docsystem.SearchResults, error)

	// HasPermission reports whether userID holds at least level on the document.
	// The owner always passes. A missing document reports false.
	HasPermission(ctx context.Context, documentID, userID string, level docsystem.PermissionLevel) (bool, error)
}
