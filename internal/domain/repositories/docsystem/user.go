package docsystem

import (
	"context"

	"docvault/internal/domain/models/docsystem"
)

// UserRepository holds the known user set
type UserRepository interface {
	// Create adds a user. An empty ID is generated.
	Create(ctx context.Context, user *docsystem.User) error
	GetByID(ctx context.Context, id string) (*docsystem.User, error)
	GetAll(ctx context.Context) ([]docsystem.User, error)
}
