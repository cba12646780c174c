package docsystem

import "context"

// TextExtractor pulls searchable plain text out of uploaded bytes.
// Each extractor handles specific file extensions.
//
// Implementations should be stateless and thread-safe.
type TextExtractor interface {
	// Extract returns the text per page (1-based). Single-page formats use page 1.
	Extract(ctx context.Context, input []byte) (map[int]string, error)

	// SupportedExtensions returns file extensions this extractor handles.
	// Extensions include the leading dot (e.g., [".txt"]).
	SupportedExtensions() []string

	// Name returns a human-readable extractor name for logging/debugging.
	Name() string
}
