package docsystem

import (
	"time"
)

type Folder struct {
	ID        string    `json:"id"`
	ParentID  *string   `json:"parent_id"` // nil = root level
	Name      string    `json:"name"`
	Path      string    `json:"path,omitempty"` // Computed display path, not stored
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the folder
func (f *Folder) Clone() *Folder {
	if f == nil {
		return nil
	}
	c := *f
	if f.ParentID != nil {
		parentID := *f.ParentID
		c.ParentID = &parentID
	}
	return &c
}

// ChildOf reports whether the folder's parent is parentID (nil = root)
func (f *Folder) ChildOf(parentID *string) bool {
	if parentID == nil {
		return f.ParentID == nil
	}
	return f.ParentID != nil && *f.ParentID == *parentID
}
