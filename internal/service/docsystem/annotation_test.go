package docsystem

import (
	"context"
	"testing"

	"docvault/internal/domain"
	models "docvault/internal/domain/models/docsystem"
	docsysSvc "docvault/internal/domain/services/docsystem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAnnotation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc := env.mkDoc(t, "review.pdf", nil, "")
	width := 40.0

	a, err := env.annotations.AddAnnotation(ctx, doc.ID, &docsysSvc.AddAnnotationRequest{
		CreatedBy: "user-2",
		Page:      2,
		Kind:      models.AnnotationComment,
		Content:   "<b>check</b> this",
		Position:  models.Position{X: 10, Y: 20, Width: &width},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "check this", a.Content)
	require.NotNil(t, a.Position.Width)
	assert.Equal(t, 40.0, *a.Position.Width)

	tests := []struct {
		name    string
		docID   string
		req     docsysSvc.AddAnnotationRequest
		wantErr error
	}{
		{
			name:    "page zero",
			docID:   doc.ID,
			req:     docsysSvc.AddAnnotationRequest{CreatedBy: "user-2", Kind: models.AnnotationHighlight},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown kind",
			docID:   doc.ID,
			req:     docsysSvc.AddAnnotationRequest{CreatedBy: "user-2", Page: 1, Kind: "sticker"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "note without text",
			docID:   doc.ID,
			req:     docsysSvc.AddAnnotationRequest{CreatedBy: "user-2", Page: 1, Kind: models.AnnotationNote},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing document",
			docID:   "missing",
			req:     docsysSvc.AddAnnotationRequest{CreatedBy: "user-2", Page: 1, Kind: models.AnnotationHighlight},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.annotations.AddAnnotation(ctx, tt.docID, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Free text is stored as written
	plain := `Q3 revenue < Q2 & "margins" don't add up`
	comment, err := env.annotations.AddAnnotation(ctx, doc.ID, &docsysSvc.AddAnnotationRequest{
		CreatedBy: "user-2",
		Page:      1,
		Kind:      models.AnnotationComment,
		Content:   plain,
	})
	require.NoError(t, err)
	assert.Equal(t, plain, comment.Content)
	listed, err := env.annotations.ListAnnotations(ctx, doc.ID, 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, plain, listed[0].Content)

	// Highlights need no text
	_, err = env.annotations.AddAnnotation(ctx, doc.ID, &docsysSvc.AddAnnotationRequest{
		CreatedBy: "user-3",
		Page:      1,
		Kind:      models.AnnotationHighlight,
	})
	require.NoError(t, err)

	all, err := env.annotations.ListAnnotations(ctx, doc.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pageTwo, err := env.annotations.ListAnnotations(ctx, doc.ID, 2)
	require.NoError(t, err)
	require.Len(t, pageTwo, 1)
	assert.Equal(t, a.ID, pageTwo[0].ID)
}

func TestRemoveAnnotation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc := env.mkDoc(t, "review.pdf", nil, "")
	a, err := env.annotations.AddAnnotation(ctx, doc.ID, &docsysSvc.AddAnnotationRequest{
		CreatedBy: "user-1",
		Page:      1,
		Kind:      models.AnnotationDrawing,
	})
	require.NoError(t, err)

	removed, err := env.annotations.RemoveAnnotation(ctx, doc.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = env.annotations.RemoveAnnotation(ctx, doc.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = env.annotations.RemoveAnnotation(ctx, "missing", a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
