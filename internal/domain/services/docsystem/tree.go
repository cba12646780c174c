package docsystem

import (
	"context"

	"docvault/internal/domain/models/docsystem"
)

// TreeService defines operations for building document trees
type TreeService interface {
	// GetTree builds and returns the nested folder/document tree
	GetTree(ctx context.Context) (*docsystem.TreeNode, error)
}
