package docsystem

// Tag is a globally shared label. Documents reference tags by id so that a
// rename or delete is visible everywhere at once.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DefaultTagColor is used when a tag is created without a color
const DefaultTagColor = "#6b7280"
