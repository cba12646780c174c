// Package textsearch finds keyword matches in per-page document text and
// produces highlighted markup for a viewer.
package textsearch

import (
	"regexp"
	"sort"
	"strings"
)

// HighlightClass is the CSS class of the span wrapping each match
const HighlightClass = "search-highlight"

// FindMatches returns, in ascending order, the pages whose text contains
// keyword (case-insensitive). A blank keyword matches nothing.
func FindMatches(pages map[int]string, keyword string) []int {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	matches := []int{}
	if keyword == "" {
		return matches
	}

	for page, text := range pages {
		if strings.Contains(strings.ToLower(text), keyword) {
			matches = append(matches, page)
		}
	}
	sort.Ints(matches)
	return matches
}

// Highlight wraps every case-insensitive occurrence of keyword in text in a
// highlight span. text is plain page text, not markup: nothing in it is
// escaped, and a keyword that also occurs inside an existing tag would split
// that tag. Regex metacharacters in keyword are matched literally. A blank
// keyword returns text as is.
func Highlight(text, keyword string) string {
	pattern := compile(keyword)
	if pattern == nil {
		return text
	}
	return pattern.ReplaceAllStringFunc(text, func(match string) string {
		return `<span class="` + HighlightClass + `">` + match + `</span>`
	})
}

// CountMatches returns how many times keyword occurs in text (case-insensitive)
func CountMatches(text, keyword string) int {
	pattern := compile(keyword)
	if pattern == nil {
		return 0
	}
	return len(pattern.FindAllStringIndex(text, -1))
}

func compile(keyword string) *regexp.Regexp {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword))
}
