package docsystem

import "io"

// UploadedFile is a file as received from the transport, before it is read
type UploadedFile struct {
	Filename string
	Size     int64 // Declared size in bytes; <= 0 when unknown
	Content  io.Reader
}

// ReceivedFile is an upload that was read completely and passed validation
type ReceivedFile struct {
	Filename string
	MimeType string
	Data     []byte
}
