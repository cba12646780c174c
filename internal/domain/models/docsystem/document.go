package docsystem

import (
	"sort"
	"strings"
	"time"
)

// RootFolderSentinel is accepted wherever a folder id is expected and means
// "no folder" (top level)
const RootFolderSentinel = "root"

type Document struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	MimeType   string         `json:"mime_type"`
	Size       int64          `json:"size"`
	ContentRef string         `json:"content_ref"`       // Blob handle of the current version
	Content    string         `json:"content,omitempty"` // Extracted text, used by search
	Pages      map[int]string `json:"-"`                 // Extracted text per page, used by the viewer
	FolderID   *string        `json:"folder_id"`         // nil = root level
	OwnerID    string         `json:"owner_id"`
	TagIDs     []string       `json:"tag_ids"`
	Tags       []Tag          `json:"tags,omitempty"` // Resolved from TagIDs on read, not stored

	Versions       []DocumentVersion    `json:"versions"`
	CurrentVersion int                  `json:"current_version"`
	Annotations    []Annotation         `json:"annotations"`
	AccessList     []AccessControlEntry `json:"access_list"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentVersion is an immutable, appended snapshot of a document's content
type DocumentVersion struct {
	ID            string    `json:"id"`
	DocumentID    string    `json:"document_id"`
	VersionNumber int       `json:"version_number"`
	ContentRef    string    `json:"content_ref"`
	Size          int64     `json:"size"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	Notes         string    `json:"notes,omitempty"`
}

// Clone returns a deep copy so callers can never alias stored state
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	if d.FolderID != nil {
		folderID := *d.FolderID
		c.FolderID = &folderID
	}
	if d.Pages != nil {
		c.Pages = make(map[int]string, len(d.Pages))
		for page, text := range d.Pages {
			c.Pages[page] = text
		}
	}
	c.TagIDs = append([]string(nil), d.TagIDs...)
	c.Tags = append([]Tag(nil), d.Tags...)
	c.Versions = append([]DocumentVersion(nil), d.Versions...)
	c.AccessList = append([]AccessControlEntry(nil), d.AccessList...)
	c.Annotations = make([]Annotation, 0, len(d.Annotations))
	for _, a := range d.Annotations {
		c.Annotations = append(c.Annotations, a.Clone())
	}
	return &c
}

// NextVersionNumber returns max(existing version numbers, 0) + 1
func (d *Document) NextVersionNumber() int {
	highest := 0
	for _, v := range d.Versions {
		if v.VersionNumber > highest {
			highest = v.VersionNumber
		}
	}
	return highest + 1
}

// Version returns the version with the given number, or nil
func (d *Document) Version(number int) *DocumentVersion {
	for i := range d.Versions {
		if d.Versions[i].VersionNumber == number {
			return &d.Versions[i]
		}
	}
	return nil
}

// AccessFor returns the access entry of a user, if any
func (d *Document) AccessFor(userID string) (AccessControlEntry, bool) {
	for _, entry := range d.AccessList {
		if entry.UserID == userID {
			return entry, true
		}
	}
	return AccessControlEntry{}, false
}

// HasTag reports whether the document references the tag id
func (d *Document) HasTag(tagID string) bool {
	for _, id := range d.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// InFolder reports whether the document sits directly in folderID (nil = root)
func (d *Document) InFolder(folderID *string) bool {
	if folderID == nil {
		return d.FolderID == nil
	}
	return d.FolderID != nil && *d.FolderID == *folderID
}

// JoinPages concatenates page text in ascending page order
func JoinPages(pages map[int]string) string {
	numbers := make([]int, 0, len(pages))
	for page := range pages {
		numbers = append(numbers, page)
	}
	sort.Ints(numbers)

	parts := make([]string, 0, len(numbers))
	for _, page := range numbers {
		parts = append(parts, pages[page])
	}
	return strings.Join(parts, "\n")
}

// NormalizeFolderID maps the root sentinel and empty string to nil
func NormalizeFolderID(folderID *string) *string {
	if folderID == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*folderID)
	if trimmed == "" || trimmed == RootFolderSentinel {
		return nil
	}
	return &trimmed
}
