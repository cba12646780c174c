package docsystem

import (
	"context"

	"docvault/internal/domain/models/docsystem"
)

// TagRepository defines data access operations for the global tag catalog
type TagRepository interface {
	Create(ctx context.Context, tag *docsystem.Tag) error
	GetByID(ctx context.Context, id string) (*docsystem.Tag, error)
	GetAll(ctx context.Context) ([]docsystem.Tag, error)
	Delete(ctx context.Context, id string) (bool, error)
}
