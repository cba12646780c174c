package docsystem

import (
	"context"

	"docvault/internal/domain/models/docsystem"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *docsystem.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*docsystem.Folder, error)

	// Update updates a folder
	Update(ctx context.Context, folder *docsystem.Folder) error

	// DeleteMany removes every listed folder. Returns how many existed.
	DeleteMany(ctx context.Context, ids []string) (int, error)

	// ListChildren lists immediate child folders (nil = root level)
	ListChildren(ctx context.Context, parentID *string) ([]docsystem.Folder, error)

	// GetAll retrieves all folders (flat list, creation order)
	GetAll(ctx context.Context) ([]docsystem.Folder, error)

	// GetPath computes the display path for a folder ("Work/Reports")
	GetPath(ctx context.Context, folderID string) (string, error)
}
