package docsystem

import (
	"context"

	"docvault/internal/domain/models/docsystem"
)

// AnnotationService appends and removes annotations on a document
type AnnotationService interface {
	AddAnnotation(ctx context.Context, documentID string, req *AddAnnotationRequest) (*docsystem.Annotation, error)

	// RemoveAnnotation is idempotent: a missing annotation reports false, not an error
	RemoveAnnotation(ctx context.Context, documentID, annotationID string) (bool, error)

	// ListAnnotations lists a document's annotations, optionally for one page (0 = all)
	ListAnnotations(ctx context.Context, documentID string, page int) ([]docsystem.Annotation, error)
}

type AddAnnotationRequest struct {
	CreatedBy string                   `json:"-"`
	Page      int                      `json:"page"`
	Kind      docsystem.AnnotationKind `json:"kind"`
	Content   string                   `json:"content"`
	Position  docsystem.Position       `json:"position"`
}
