package docsystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionLevel_AtLeast(t *testing.T) {
	levels := PermissionLevels()
	for i, held := range levels {
		for j, required := range levels {
			assert.Equal(t, i >= j, held.AtLeast(required), "%s >= %s", held, required)
		}
	}

	assert.False(t, PermissionLevel("owner").AtLeast(PermissionNone))
}

func TestParsePermissionLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    PermissionLevel
		wantErr bool
	}{
		{in: "view", want: PermissionView},
		{in: " Admin ", want: PermissionAdmin},
		{in: "none", want: PermissionNone},
		{in: "owner", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePermissionLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePermissionLevel_ListsSupportedLevels(t *testing.T) {
	_, err := ParsePermissionLevel("owner")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(supported: none, view, edit, download, admin)")
}
