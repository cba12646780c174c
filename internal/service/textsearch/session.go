package textsearch

import "strings"

// Session is one viewer search over a document's page text. Rendering always
// starts from the original text, so highlighting the same page twice yields
// identical markup.
type Session struct {
	pages     map[int]string
	keyword   string
	navigator *Navigator
}

// Result summarizes a search for transport
type Result struct {
	Keyword     string `json:"keyword"`
	Matches     []int  `json:"matches"`
	Current     int    `json:"current_page,omitempty"`
	Index       int    `json:"current_index"`
	Occurrences int    `json:"occurrences"`
	Markup      string `json:"markup,omitempty"`
}

// NewSession copies pages so later changes by the caller are not observed
func NewSession(pages map[int]string) *Session {
	copied := make(map[int]string, len(pages))
	for page, text := range pages {
		copied[page] = text
	}
	return &Session{pages: copied, navigator: NewNavigator(nil)}
}

// Search replaces the current keyword and resets navigation to the first match
func (s *Session) Search(keyword string) []int {
	s.keyword = strings.TrimSpace(keyword)
	matches := FindMatches(s.pages, s.keyword)
	s.navigator = NewNavigator(matches)
	return matches
}

// Navigator returns the navigation state of the last search
func (s *Session) Navigator() *Navigator { return s.navigator }

// Render returns the page with the current keyword highlighted
func (s *Session) Render(page int) (string, bool) {
	text, ok := s.pages[page]
	if !ok {
		return "", false
	}
	return Highlight(text, s.keyword), true
}

// Result describes the current match, with its page rendered
func (s *Session) Result() Result {
	res := Result{
		Keyword: s.keyword,
		Matches: append([]int{}, s.navigator.matches...),
		Index:   s.navigator.Index(),
	}
	for _, text := range s.pages {
		res.Occurrences += CountMatches(text, s.keyword)
	}
	if page, ok := s.navigator.Current(); ok {
		res.Current = page
		res.Markup, _ = s.Render(page)
	}
	return res
}
