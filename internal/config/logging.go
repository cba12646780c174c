package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// NewLogger builds the process logger: JSON to stdout, tee'd to a log file
// when LOG_DIR is set. The returned closer must be called on shutdown.
func NewLogger(cfg *Config) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	if cfg.LogDir != "" {
		f, err := SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(os.Stdout, f)
		closer = f
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogFile creates a new timestamped log file and cleans up old files.
// Returns the file handle (caller must close) or error.
func SetupLogFile(dir string, maxFiles int) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("docvault-%s.log",
		time.Now().Format("2006-01-02T15-04-05")))

	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	// Cleanup old files (keep maxFiles most recent)
	if err := cleanupOldLogs(dir, maxFiles); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to cleanup old logs: %v\n", err)
	}

	return f, nil
}

// cleanupOldLogs removes oldest log files when count exceeds maxFiles.
func cleanupOldLogs(dir string, maxFiles int) error {
	files, err := filepath.Glob(filepath.Join(dir, "docvault-*.log"))
	if err != nil {
		return err
	}
	if maxFiles < 1 || len(files) <= maxFiles {
		return nil
	}

	// Timestamp format sorts chronologically
	sort.Strings(files)

	for i := 0; i < len(files)-maxFiles; i++ {
		if err := os.Remove(files[i]); err != nil {
			return fmt.Errorf("remove %s: %w", files[i], err)
		}
	}
	return nil
}
