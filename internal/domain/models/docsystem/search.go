package docsystem

import (
	"fmt"
	"strings"
)

// TagQueryPrefix selects tag-name search when a query starts with it
const TagQueryPrefix = "tag:"

// SearchMode defines which matching rule a query uses
type SearchMode string

const (
	// SearchModeText matches name and extracted content
	SearchModeText SearchMode = "text"

	// SearchModeTag matches tag names (query "tag:<name>")
	SearchModeTag SearchMode = "tag"
)

// SearchField defines which document fields a text search looks at
type SearchField string

const (
	SearchFieldName    SearchField = "name"
	SearchFieldContent SearchField = "content"
	SearchFieldTag     SearchField = "tag"
)

// Default search configuration values
const (
	DefaultSearchLimit  = 20
	DefaultSearchOffset = 0
	MaxSearchLimit      = 100
)

// SearchOptions configures how documents are searched
type SearchOptions struct {
	// Query is the raw search string. Blank means search is inactive.
	Query string

	// FolderID optionally scopes results to documents directly in this folder.
	// nil = all documents.
	FolderID *string

	// Fields specifies which fields a text search looks at
	// Default: [SearchFieldName, SearchFieldContent]
	Fields []SearchField

	// Pagination
	Limit  int
	Offset int
}

// ApplyDefaults fills in default values for unset fields
func (opts *SearchOptions) ApplyDefaults() {
	if len(opts.Fields) == 0 {
		opts.Fields = []SearchField{SearchFieldName, SearchFieldContent}
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultSearchLimit
	}
	if opts.Offset < 0 {
		opts.Offset = DefaultSearchOffset
	}
}

// Validate checks that values are reasonable. A blank query is valid and
// yields no results.
func (opts *SearchOptions) Validate() error {
	if opts.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	if opts.Limit > MaxSearchLimit {
		return fmt.Errorf("limit cannot exceed %d (requested: %d)", MaxSearchLimit, opts.Limit)
	}
	if opts.Offset < 0 {
		return fmt.Errorf("offset cannot be negative")
	}

	for _, field := range opts.Fields {
		switch field {
		case SearchFieldName, SearchFieldContent:
		default:
			return fmt.Errorf("invalid search field: %q (supported: name, content)", field)
		}
	}

	return nil
}

// ParsedQuery is a query split into its mode and lower-cased term
type ParsedQuery struct {
	Mode SearchMode
	Term string
}

// Active reports whether the query should match anything at all
func (q ParsedQuery) Active() bool {
	return q.Term != ""
}

// ParseQuery selects the search mode from the reserved "tag:" prefix.
// The term is trimmed and lower-cased for case-insensitive matching.
func ParseQuery(query string) ParsedQuery {
	query = strings.TrimSpace(query)
	if strings.HasPrefix(query, TagQueryPrefix) {
		return ParsedQuery{
			Mode: SearchModeTag,
			Term: strings.ToLower(strings.TrimSpace(query[len(TagQueryPrefix):])),
		}
	}
	return ParsedQuery{Mode: SearchModeText, Term: strings.ToLower(query)}
}

// SearchResult represents a single matched document
type SearchResult struct {
	Document Document `json:"document"`

	// MatchedOn lists the fields that matched (name, content, tag)
	MatchedOn []SearchField `json:"matched_on"`
}

// SearchResults contains the full search response with pagination metadata
type SearchResults struct {
	Results []SearchResult `json:"results"`

	// TotalCount is the total number of matches (regardless of limit/offset)
	TotalCount int `json:"total_count"`

	// HasMore indicates if there are more results beyond this page
	HasMore bool `json:"has_more"`

	Offset int        `json:"offset"`
	Limit  int        `json:"limit"`
	Mode   SearchMode `json:"mode"`
}

// NewSearchResults creates a SearchResults with calculated HasMore flag
func NewSearchResults(results []SearchResult, totalCount int, mode SearchMode, opts *SearchOptions) *SearchResults {
	if results == nil {
		results = []SearchResult{}
	}
	hasMore := (opts.Offset + len(results)) < totalCount

	return &SearchResults{
		Results:    results,
		TotalCount: totalCount,
		HasMore:    hasMore,
		Offset:     opts.Offset,
		Limit:      opts.Limit,
		Mode:       mode,
	}
}
