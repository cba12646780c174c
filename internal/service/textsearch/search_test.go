package textsearch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMatches(t *testing.T) {
	pages := map[int]string{
		3: "Quarterly REPORT summary",
		1: "Cover page",
		2: "The report body",
		4: "Appendix",
	}

	tests := []struct {
		name    string
		keyword string
		want    []int
	}{
		{name: "case insensitive, ascending pages", keyword: "report", want: []int{2, 3}},
		{name: "single page", keyword: "cover", want: []int{1}},
		{name: "no match", keyword: "missing", want: []int{}},
		{name: "blank keyword", keyword: "   ", want: []int{}},
		{name: "empty keyword", keyword: "", want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindMatches(pages, tt.keyword))
		})
	}
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name    string
		markup  string
		keyword string
		want    string
	}{
		{
			name:    "single match",
			markup:  "The quick fox",
			keyword: "quick",
			want:    `The <span class="search-highlight">quick</span> fox`,
		},
		{
			name:    "keeps original casing",
			markup:  "Go go GO",
			keyword: "go",
			want:    `<span class="search-highlight">Go</span> <span class="search-highlight">go</span> <span class="search-highlight">GO</span>`,
		},
		{
			name:    "metacharacters are literal",
			markup:  "cost (a+b) vs aab",
			keyword: "(a+b)",
			want:    `cost <span class="search-highlight">(a+b)</span> vs aab`,
		},
		{
			name:    "blank keyword",
			markup:  "untouched",
			keyword: "",
			want:    "untouched",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Highlight(tt.markup, tt.keyword))
		})
	}
}

func TestHighlight_RoundTrip(t *testing.T) {
	const original = "The quick fox"

	first := Highlight(original, "quick")
	assert.Equal(t, 1, strings.Count(first, `<span class="search-highlight">`))
	assert.True(t, strings.HasPrefix(first, "The "))
	assert.True(t, strings.HasSuffix(first, " fox"))

	// Re-rendering from the original text is idempotent
	assert.Equal(t, first, Highlight(original, "quick"))
}

func TestNavigator(t *testing.T) {
	t.Run("wraps both ways", func(t *testing.T) {
		n := NewNavigator([]int{2, 5, 9})

		page, ok := n.Current()
		require.True(t, ok)
		assert.Equal(t, 2, page)

		page, _ = n.Next()
		assert.Equal(t, 5, page)
		page, _ = n.Next()
		assert.Equal(t, 9, page)
		page, _ = n.Next()
		assert.Equal(t, 2, page)

		page, _ = n.Previous()
		assert.Equal(t, 9, page)
	})

	t.Run("single match stays put", func(t *testing.T) {
		n := NewNavigator([]int{4})
		page, ok := n.Next()
		require.True(t, ok)
		assert.Equal(t, 4, page)
		assert.Equal(t, 0, n.Index())
	})

	t.Run("empty", func(t *testing.T) {
		n := NewNavigator(nil)
		_, ok := n.Next()
		assert.False(t, ok)
		_, ok = n.Previous()
		assert.False(t, ok)
		assert.Equal(t, -1, n.Index())
	})
}

func TestSession(t *testing.T) {
	pages := map[int]string{1: "The quick fox", 2: "nothing here", 3: "quick quick"}
	s := NewSession(pages)

	matches := s.Search("Quick")
	assert.Equal(t, []int{1, 3}, matches)

	first, ok := s.Render(1)
	require.True(t, ok)
	again, _ := s.Render(1)
	assert.Equal(t, first, again)

	res := s.Result()
	assert.Equal(t, 1, res.Current)
	assert.Equal(t, 3, res.Occurrences)
	assert.Equal(t, first, res.Markup)

	s.Navigator().Next()
	res = s.Result()
	assert.Equal(t, 3, res.Current)
	assert.Equal(t, 1, res.Index)

	// caller's map is not observed after construction
	pages[1] = "changed"
	text, _ := s.Render(1)
	assert.Contains(t, text, "fox")
}
