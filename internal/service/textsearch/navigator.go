package textsearch

// Navigator steps through a list of matching pages. Next and Previous wrap
// around at either end.
type Navigator struct {
	matches []int
	current int
}

// NewNavigator starts at the first match
func NewNavigator(matches []int) *Navigator {
	return &Navigator{matches: append([]int(nil), matches...)}
}

// Len returns the number of matches
func (n *Navigator) Len() int { return len(n.matches) }

// Index returns the position of the current match, or -1 when there are none
func (n *Navigator) Index() int {
	if len(n.matches) == 0 {
		return -1
	}
	return n.current
}

// Current returns the current page. ok is false when there are no matches.
func (n *Navigator) Current() (page int, ok bool) {
	if len(n.matches) == 0 {
		return 0, false
	}
	return n.matches[n.current], true
}

// Next advances to the following match, wrapping to the first
func (n *Navigator) Next() (page int, ok bool) {
	if len(n.matches) == 0 {
		return 0, false
	}
	n.current = (n.current + 1) % len(n.matches)
	return n.matches[n.current], true
}

// Previous moves to the preceding match, wrapping to the last
func (n *Navigator) Previous() (page int, ok bool) {
	if len(n.matches) == 0 {
		return 0, false
	}
	n.current = (n.current - 1 + len(n.matches)) % len(n.matches)
	return n.matches[n.current], true
}
