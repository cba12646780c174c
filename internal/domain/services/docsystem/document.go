package docsystem

import (
	"context"

	"docvault/internal/domain/models/docsystem"
)

// DocumentService handles document business logic
type DocumentService interface {
	// CreateDocument stores the content as version 1 and creates the document.
	// The owner receives an admin access entry.
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*docsystem.Document, error)

	// GetDocument retrieves a document with its tags resolved
	GetDocument(ctx context.Context, documentID string) (*docsystem.Document, error)

	// UpdateDocument merges the provided fields (rename, move, retag, content)
	UpdateDocument(ctx context.Context, documentID string, req *UpdateDocumentRequest) (*docsystem.Document, error)

	// DeleteDocument removes a document and its version blobs.
	// Reports whether the document existed.
	DeleteDocument(ctx context.Context, documentID string) (bool, error)

	// AddVersion appends version max+1 and makes it current
	AddVersion(ctx context.Context, documentID string, req *AddVersionRequest) (*docsystem.DocumentVersion, error)

	// ListVersions lists versions in creation order
	ListVersions(ctx context.Context, documentID string) ([]docsystem.DocumentVersion, error)

	// GetContent dereferences the blob of a version (0 = current)
	GetContent(ctx context.Context, documentID string, version int) (*docsystem.Blob, error)

	// SetPageText stores per-page extracted text and rebuilds the searchable content
	SetPageText(ctx context.Context, documentID string, pages map[int]string) (*docsystem.Document, error)
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	OwnerID  string   `json:"-"`                   // Set by handler from the identity context
	Name     string   `json:"name"`                // Display name (defaults to Filename)
	Filename string   `json:"filename"`            // Original file name; selects MIME type and extractor
	FolderID *string  `json:"folder_id,omitempty"` // nil, "" or "root" = top level
	TagIDs   []string `json:"tag_ids,omitempty"`
	Notes    string   `json:"notes,omitempty"` // Change notes for version 1
	Data     []byte   `json:"-"`
	Content  *string  `json:"content,omitempty"` // Extracted text; nil = run the extractor
}

// OptionalFolderID tracks tri-state semantics for folder moves (RFC 7396 PATCH).
// Transport-agnostic; handlers map from httputil.OptionalString.
//   - Present=false: field absent (don't move)
//   - Present=true, Value=nil: move to root
//   - Present=true, Value=&id: move into folder id ("root" and "" also mean root)
type OptionalFolderID struct {
	Present bool
	Value   *string
}

// UpdateDocumentRequest represents a document update request
type UpdateDocumentRequest struct {
	Name     *string
	FolderID OptionalFolderID
	TagIDs   *[]string
	Content  *string
}

// AddVersionRequest represents a new version upload
type AddVersionRequest struct {
	CreatedBy string
	Filename  string
	Notes     string
	Data      []byte
	Content   *string // Extracted text; nil = run the extractor
}
