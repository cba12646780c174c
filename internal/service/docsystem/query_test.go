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

func resultNames(results *models.SearchResults) []string {
	names := make([]string, 0, len(results.Results))
	for _, r := range results.Results {
		names = append(names, r.Document.Name)
	}
	return names
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	work := env.mkFolder(t, "Work", nil)
	d1 := env.mkDoc(t, "D1.pdf", nil, "")
	env.mkDoc(t, "D2.pdf", nil, "")
	env.mkDoc(t, "budget.txt", &work.ID, "Quarterly numbers")

	_, err := env.docs.UpdateDocument(ctx, d1.ID, &docsysSvc.UpdateDocumentRequest{TagIDs: &[]string{"t1"}})
	require.NoError(t, err)

	tests := []struct {
		name     string
		opts     models.SearchOptions
		want     []string
		wantMode models.SearchMode
	}{
		{
			name:     "tag by name",
			opts:     models.SearchOptions{Query: "tag:important"},
			want:     []string{"D1.pdf"},
			wantMode: models.SearchModeTag,
		},
		{
			name:     "tag id is not a name",
			opts:     models.SearchOptions{Query: "tag:t1"},
			want:     []string{},
			wantMode: models.SearchModeTag,
		},
		{
			name:     "empty query",
			opts:     models.SearchOptions{Query: ""},
			want:     []string{},
			wantMode: models.SearchModeText,
		},
		{
			name:     "blank tag query",
			opts:     models.SearchOptions{Query: "tag:  "},
			want:     []string{},
			wantMode: models.SearchModeTag,
		},
		{
			name:     "name is case-insensitive",
			opts:     models.SearchOptions{Query: "d2"},
			want:     []string{"D2.pdf"},
			wantMode: models.SearchModeText,
		},
		{
			name:     "extracted content",
			opts:     models.SearchOptions{Query: "quarterly"},
			want:     []string{"budget.txt"},
			wantMode: models.SearchModeText,
		},
		{
			name:     "name field only",
			opts:     models.SearchOptions{Query: "quarterly", Fields: []models.SearchField{models.SearchFieldName}},
			want:     []string{},
			wantMode: models.SearchModeText,
		},
		{
			name:     "scoped to folder",
			opts:     models.SearchOptions{Query: ".", FolderID: &work.ID},
			want:     []string{"budget.txt"},
			wantMode: models.SearchModeText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			results, err := env.query.Search(ctx, &opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resultNames(results))
			assert.Equal(t, len(tt.want), results.TotalCount)
			assert.Equal(t, tt.wantMode, results.Mode)
		})
	}
}

func TestSearch_Pagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, name := range []string{"r1.pdf", "r2.pdf", "r3.pdf"} {
		env.mkDoc(t, name, nil, "")
	}

	page, err := env.query.Search(ctx, &models.SearchOptions{Query: "r", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1.pdf", "r2.pdf"}, resultNames(page))
	assert.Equal(t, 3, page.TotalCount)
	assert.True(t, page.HasMore)

	page, err = env.query.Search(ctx, &models.SearchOptions{Query: "r", Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"r3.pdf"}, resultNames(page))
	assert.False(t, page.HasMore)

	_, err = env.query.Search(ctx, &models.SearchOptions{Query: "r", Limit: models.MaxSearchLimit + 1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestHasPermission(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doc := env.mkDoc(t, "shared.pdf", nil, "")
	_, err := env.access.SetAccess(ctx, doc.ID, "user-2", models.PermissionView)
	require.NoError(t, err)

	tests := []struct {
		name   string
		userID string
		level  models.PermissionLevel
		want   bool
	}{
		{name: "view holder passes view", userID: "user-2", level: models.PermissionView, want: true},
		{name: "view holder fails edit", userID: "user-2", level: models.PermissionEdit, want: false},
		{name: "view holder fails admin", userID: "user-2", level: models.PermissionAdmin, want: false},
		{name: "no entry fails view", userID: "user-3", level: models.PermissionView, want: false},
		{name: "owner passes admin", userID: "user-1", level: models.PermissionAdmin, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.query.HasPermission(ctx, doc.ID, tt.userID, tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("owner passes regardless of recorded entry", func(t *testing.T) {
		stored, err := env.docRepo.GetByID(ctx, doc.ID)
		require.NoError(t, err)
		stored.AccessList = []models.AccessControlEntry{{UserID: "user-1", Level: models.PermissionNone}}
		require.NoError(t, env.docRepo.Update(ctx, stored))

		got, err := env.query.HasPermission(ctx, doc.ID, "user-1", models.PermissionAdmin)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("missing document", func(t *testing.T) {
		got, err := env.query.HasPermission(ctx, "missing", "user-1", models.PermissionView)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := env.query.HasPermission(ctx, doc.ID, "user-1", "owner")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestTree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	work := env.mkFolder(t, "Work", nil)
	env.mkFolder(t, "Q1", &work.ID)
	env.mkDoc(t, "in-work.pdf", &work.ID, "")
	env.mkDoc(t, "top.pdf", nil, "")

	tree, err := env.tree.GetTree(ctx)
	require.NoError(t, err)

	require.Len(t, tree.Folders, 1)
	assert.Equal(t, "Work", tree.Folders[0].Name)
	require.Len(t, tree.Folders[0].Folders, 1)
	assert.Equal(t, "Q1", tree.Folders[0].Folders[0].Name)
	require.Len(t, tree.Folders[0].Documents, 1)
	assert.Equal(t, "in-work.pdf", tree.Folders[0].Documents[0].Name)
	require.Len(t, tree.Documents, 1)
	assert.Equal(t, "top.pdf", tree.Documents[0].Name)
}
