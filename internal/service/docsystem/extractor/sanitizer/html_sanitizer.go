package sanitizer

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer turns user-supplied text into plain text: markup is removed
// and everything else comes back exactly as typed.
//
// Thread-safe for concurrent use.
type TextSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer creates a sanitizer that strips all HTML.
// Used for annotation content.
func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize returns the input with tags removed. Script and style element
// contents are dropped entirely. The policy escapes the text it keeps, which
// is undone here so '<', '&' and quotes survive as written.
func (s *TextSanitizer) Sanitize(text string) string {
	return html.UnescapeString(s.policy.Sanitize(text))
}
