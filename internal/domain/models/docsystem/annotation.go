package docsystem

import "time"

type AnnotationKind string

const (
	AnnotationComment   AnnotationKind = "comment"
	AnnotationHighlight AnnotationKind = "highlight"
	AnnotationNote      AnnotationKind = "note"
	AnnotationDrawing   AnnotationKind = "drawing"
)

// AnnotationKinds lists every supported kind
func AnnotationKinds() []AnnotationKind {
	return []AnnotationKind{AnnotationComment, AnnotationHighlight, AnnotationNote, AnnotationDrawing}
}

// Position is page-relative; width and height are optional
type Position struct {
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// Annotation is append/remove only; content is never edited in place
type Annotation struct {
	ID         string         `json:"id"`
	DocumentID string         `json:"document_id"`
	Page       int            `json:"page"`
	Kind       AnnotationKind `json:"kind"`
	Content    string         `json:"content"`
	Position   Position       `json:"position"`
	CreatedBy  string         `json:"created_by"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Clone returns a copy that shares no pointers with p
func (p Position) Clone() Position {
	if p.Width != nil {
		w := *p.Width
		p.Width = &w
	}
	if p.Height != nil {
		h := *p.Height
		p.Height = &h
	}
	return p
}

// Clone returns a deep copy of the annotation
func (a Annotation) Clone() Annotation {
	a.Position = a.Position.Clone()
	return a
}
