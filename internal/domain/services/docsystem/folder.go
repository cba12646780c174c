package docsystem

import (
	"context"

	"docvault/internal/domain/models/docsystem"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a new folder under an existing parent (nil = root)
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*docsystem.Folder, error)

	// GetFolder retrieves a folder with its computed path
	GetFolder(ctx context.Context, id string) (*docsystem.Folder, error)

	// UpdateFolder updates a folder (rename or move)
	UpdateFolder(ctx context.Context, id string, req *UpdateFolderRequest) (*docsystem.Folder, error)

	// DeleteFolder deletes the folder and every descendant folder. Documents
	// inside them are moved to root. Reports whether the folder existed.
	DeleteFolder(ctx context.Context, id string) (bool, error)

	// ListChildren lists all child folders and documents (nil = root)
	ListChildren(ctx context.Context, folderID *string) (*FolderContents, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	OwnerID  string  `json:"-"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"` // nil, "" or "root" = top level
}

// UpdateFolderRequest represents a folder update request
type UpdateFolderRequest struct {
	Name     *string
	ParentID OptionalFolderID
}

// FolderContents represents a folder with its children
type FolderContents struct {
	Folder    *docsystem.Folder    `json:"folder,omitempty"` // null for root
	Folders   []docsystem.Folder   `json:"folders"`
	Documents []docsystem.Document `json:"documents"`
}
