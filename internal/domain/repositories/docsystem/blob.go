package docsystem

import (
	"context"

	"docvault/internal/domain/models/docsystem"
)

// BlobRepository converts raw bytes to a dereferenceable handle and back
type BlobRepository interface {
	// Put stores data and returns its ref
	Put(ctx context.Context, data []byte, mimeType string) (string, error)

	// Get dereferences a ref
	Get(ctx context.Context, ref string) (*docsystem.Blob, error)

	// Delete drops the blob; reports whether it existed
	Delete(ctx context.Context, ref string) (bool, error)
}
