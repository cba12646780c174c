package extractor

import (
	"context"
	"strings"
	"unicode/utf8"

	docsysSvc "docvault/internal/domain/services/docsystem"
)

// formFeed separates pages in plain-text exports
const formFeed = "\f"

// textExtractor treats plain text as its own extracted content.
// Form feeds split pages; a file without them is a single page.
type textExtractor struct{}

// NewTextExtractor creates a new plain-text extractor.
func NewTextExtractor() docsysSvc.TextExtractor {
	return &textExtractor{}
}

func (e *textExtractor) Extract(ctx context.Context, input []byte) (map[int]string, error) {
	if len(input) == 0 {
		return nil, nil
	}
	text := string(input)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}

	pages := make(map[int]string)
	for i, page := range strings.Split(text, formFeed) {
		pages[i+1] = page
	}
	return pages, nil
}

func (e *textExtractor) SupportedExtensions() []string {
	return []string{".txt", ".text"}
}

func (e *textExtractor) Name() string {
	return "plaintext"
}
