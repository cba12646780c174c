package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port          string
	Environment   string
	CORSOrigins   string
	DefaultUserID string // Acting user when a request carries no X-User-ID header
	// Uploads
	MaxUploadBytes   int64
	UploadChunkBytes int
	UploadRetention  time.Duration // How long finished upload sessions stay queryable
	// Seed data (empty = embedded seed)
	SeedFile string
	// Logging
	LogDir      string
	LogMaxFiles int
	// Debug flags
	Debug bool // Enables debug-level logging
}

func Load() (*Config, error) {
	env := getEnv("ENVIRONMENT", "dev")

	maxUpload, err := getInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)
	if err != nil {
		return nil, err
	}
	chunk, err := getInt64("UPLOAD_CHUNK_BYTES", DefaultUploadChunkBytes)
	if err != nil {
		return nil, err
	}
	logMaxFiles, err := getInt64("LOG_MAX_FILES", 10)
	if err != nil {
		return nil, err
	}
	retention, err := time.ParseDuration(getEnv("UPLOAD_RETENTION", "10m"))
	if err != nil {
		return nil, fmt.Errorf("UPLOAD_RETENTION: %w", err)
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      env,
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:3000"),
		DefaultUserID:    getEnv("DEFAULT_USER_ID", "user-1"),
		MaxUploadBytes:   maxUpload,
		UploadChunkBytes: int(chunk),
		UploadRetention:  retention,
		SeedFile:         getEnv("SEED_FILE", ""),
		LogDir:           getEnv("LOG_DIR", ""),
		LogMaxFiles:      int(logMaxFiles),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}

	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}
	if cfg.UploadChunkBytes <= 0 {
		return nil, fmt.Errorf("UPLOAD_CHUNK_BYTES must be positive, got %d", cfg.UploadChunkBytes)
	}
	return cfg, nil
}

// Origins splits CORS_ORIGINS on commas
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
