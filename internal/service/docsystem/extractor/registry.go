package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	docsysSvc "docvault/internal/domain/services/docsystem"
)

// Registry manages text extractors and routes files by extension.
//
// Thread-safe for concurrent access.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]docsysSvc.TextExtractor // key: file extension (e.g., ".txt")
}

// NewRegistry creates a registry with the standard extractors pre-registered.
func NewRegistry() *Registry {
	registry := &Registry{
		extractors: make(map[string]docsysSvc.TextExtractor),
	}

	registry.Register(NewTextExtractor())

	return registry
}

// Register adds an extractor and associates it with its supported extensions.
// Extensions are normalized to lowercase with leading dot.
func (r *Registry) Register(extractor docsysSvc.TextExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range extractor.SupportedExtensions() {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.extractors[ext] = extractor
	}
}

// Get retrieves the extractor for a file extension, or nil.
// Lookup is case-insensitive.
func (r *Registry) Get(fileExt string) docsysSvc.TextExtractor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.extractors[strings.ToLower(fileExt)]
}

// Extract selects the extractor by filename. Files without a registered
// extractor have no searchable text: the result is nil with no error.
func (r *Registry) Extract(ctx context.Context, filename string, content []byte) (map[int]string, error) {
	extractor := r.Get(filepath.Ext(filename))
	if extractor == nil {
		return nil, nil
	}
	pages, err := extractor.Extract(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("%s extractor: %w", extractor.Name(), err)
	}
	return pages, nil
}

// SupportedExtensions returns all registered file extensions.
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	return exts
}
