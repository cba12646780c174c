package config

import (
	"path/filepath"
	"strings"
)

const (
	// MaxDocumentNameLength is the maximum length for document names.
	MaxDocumentNameLength = 255

	// MaxFolderNameLength is the maximum length for folder names.
	// Same as document names for consistency.
	MaxFolderNameLength = 255

	// MaxTagNameLength keeps tag chips readable
	MaxTagNameLength = 50

	// MaxAnnotationLength bounds free-text annotation content
	MaxAnnotationLength = 5000

	// MaxVersionNotesLength bounds change notes on a version
	MaxVersionNotesLength = 1000

	// DefaultMaxUploadBytes is the upload size ceiling (50 MiB).
	// Overridable with MAX_UPLOAD_BYTES.
	DefaultMaxUploadBytes = 50 << 20

	// DefaultUploadChunkBytes is how much is read between progress updates
	DefaultUploadChunkBytes = 64 << 10
)

// uploadMimeTypes is the upload allow-list keyed by lower-case extension
var uploadMimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".txt":  "text/plain",
}

// AllowedUploadExtensions returns the allow-list in display order
func AllowedUploadExtensions() []string {
	return []string{".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".jpg", ".jpeg", ".png", ".txt"}
}

// UploadMimeType returns the MIME type for an allowed filename.
// ok is false when the extension is not on the allow-list.
func UploadMimeType(filename string) (mimeType string, ok bool) {
	mimeType, ok = uploadMimeTypes[strings.ToLower(filepath.Ext(filename))]
	return mimeType, ok
}
