package docsystem

// Blob is raw file content addressed by an opaque ref ("blob:<uuid>").
// Documents and versions hold the ref only; the bytes live in the blob repository.
type Blob struct {
	Ref      string `json:"ref"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	Data     []byte `json:"-"`
}
