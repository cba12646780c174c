package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "DEFAULT_USER_ID", "MAX_UPLOAD_BYTES", "UPLOAD_CHUNK_BYTES", "UPLOAD_RETENTION", "DEBUG"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "user-1", cfg.DefaultUserID)
	assert.EqualValues(t, 50<<20, cfg.MaxUploadBytes)
	assert.Equal(t, 64<<10, cfg.UploadChunkBytes)
	assert.Equal(t, 10*time.Minute, cfg.UploadRetention)
	assert.True(t, cfg.Debug)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("DEBUG", "")
	t.Setenv("MAX_UPLOAD_BYTES", "10485760")
	t.Setenv("UPLOAD_RETENTION", "30s")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.EqualValues(t, 10<<20, cfg.MaxUploadBytes)
	assert.Equal(t, 30*time.Second, cfg.UploadRetention)
	assert.False(t, cfg.Debug)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-numeric size", key: "MAX_UPLOAD_BYTES", value: "lots"},
		{name: "zero size", key: "MAX_UPLOAD_BYTES", value: "0"},
		{name: "negative chunk", key: "UPLOAD_CHUNK_BYTES", value: "-1"},
		{name: "bad duration", key: "UPLOAD_RETENTION", value: "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestUploadMimeType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
		ok       bool
	}{
		{"report.pdf", "application/pdf", true},
		{"PHOTO.JPG", "image/jpeg", true},
		{"notes.txt", "text/plain", true},
		{"script.exe", "", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, ok := UploadMimeType(tt.filename)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"docvault-2024-01-01T00-00-00.log",
		"docvault-2024-01-02T00-00-00.log",
		"docvault-2024-01-03T00-00-00.log",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	require.NoError(t, cleanupOldLogs(dir, 2))

	files, err := filepath.Glob(filepath.Join(dir, "docvault-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, names[1], filepath.Base(files[0]))
}
