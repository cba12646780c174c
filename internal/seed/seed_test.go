package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"docvault/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	f, err := Load("")
	require.NoError(t, err)
	require.Len(t, f.Users, 3)
	assert.Equal(t, "user-1", f.Users[0].ID)
	assert.Equal(t, "Demo User", f.Users[0].Name)
	require.Len(t, f.Tags, 3)
	assert.Equal(t, "Important", f.Tags[0].Name)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "not yaml", yaml: "users: [oops"},
		{name: "no users", yaml: "tags: []"},
		{name: "user without name", yaml: "users:\n  - id: u1\n"},
		{name: "unknown role", yaml: "users:\n  - id: u1\n    name: A\n    role: owner\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore(logger)
	users := memory.NewUserRepository(store)
	tags := memory.NewTagRepository(store)

	f, err := Parse([]byte("users:\n  - id: u1\n    name: Ann\ntags:\n  - id: t1\n    name: Later\n"))
	require.NoError(t, err)
	require.NoError(t, NewSeeder(users, tags, logger).Seed(ctx, f))

	user, err := users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)

	tag, err := tags.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "#6b7280", tag.Color)
}
