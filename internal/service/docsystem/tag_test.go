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

func TestCreateTag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		req       docsysSvc.CreateTagRequest
		wantColor string
		wantErr   error
	}{
		{name: "default color", req: docsysSvc.CreateTagRequest{Name: "Work"}, wantColor: models.DefaultTagColor},
		{name: "short hex", req: docsysSvc.CreateTagRequest{Name: "Home", Color: "#abc"}, wantColor: "#abc"},
		{name: "named color", req: docsysSvc.CreateTagRequest{Name: "Misc", Color: "teal"}, wantColor: "teal"},
		{name: "colon in name", req: docsysSvc.CreateTagRequest{Name: "tag:x"}, wantErr: domain.ErrValidation},
		{name: "blank name", req: docsysSvc.CreateTagRequest{Name: " "}, wantErr: domain.ErrValidation},
		{name: "bad color", req: docsysSvc.CreateTagRequest{Name: "Odd", Color: "#12"}, wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, err := env.tags.CreateTag(ctx, &tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, tag.ID)
			assert.Equal(t, tt.wantColor, tag.Color)
		})
	}
}

func TestDeleteTag_DetachesFromDocuments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc, err := env.docs.CreateDocument(ctx, &docsysSvc.CreateDocumentRequest{
		OwnerID:  "user-1",
		Filename: "tagged.pdf",
		TagIDs:   []string{"t1"},
	})
	require.NoError(t, err)

	existed, err := env.tags.DeleteTag(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, existed)

	stored, err := env.docs.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.TagIDs)
	assert.Empty(t, stored.Tags)

	results, err := env.query.Search(ctx, &models.SearchOptions{Query: "tag:important"})
	require.NoError(t, err)
	assert.Zero(t, results.TotalCount)

	existed, err = env.tags.DeleteTag(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, existed)
}
