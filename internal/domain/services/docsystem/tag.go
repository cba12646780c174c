package docsystem

import (
	"context"

	"docvault/internal/domain/models/docsystem"
)

// TagService manages the global tag catalog
type TagService interface {
	CreateTag(ctx context.Context, req *CreateTagRequest) (*docsystem.Tag, error)
	ListTags(ctx context.Context) ([]docsystem.Tag, error)

	// DeleteTag removes the tag and detaches it from every document.
	// Reports whether the tag existed.
	DeleteTag(ctx context.Context, id string) (bool, error)
}

type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"` // Defaults to docsystem.DefaultTagColor
}
