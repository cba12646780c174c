package docsystem

import (
	"context"

	"docvault/internal/domain/models/docsystem"
)

// CommitFn stores a fully received file and returns the resulting document id.
// It runs at most once per session and only while the session is still in progress.
type CommitFn func(ctx context.Context, file *ReceivedFile) (documentID string, err error)

// UploadService tracks upload sessions through the upload state machine
type UploadService interface {
	// CreateSession opens an idle session
	CreateSession(ctx context.Context) (*docsystem.UploadStatus, error)

	// GetSession returns the current status of a session
	GetSession(ctx context.Context, id string) (*docsystem.UploadStatus, error)

	// CancelSession cancels a non-terminal session. Cancelling a finished
	// session is a no-op that returns its final status.
	CancelSession(ctx context.Context, id string) (*docsystem.UploadStatus, error)

	// Subscribe streams status changes of a session. The channel is closed
	// once the session reaches a terminal state or unsubscribe is called.
	Subscribe(ctx context.Context, id string) (<-chan docsystem.UploadStatus, func(), error)

	// Receive validates and reads file chunk by chunk, advancing the session,
	// then calls commit. sessionID may be empty for an untracked upload.
	// A cancelled session or context aborts before commit and nothing is stored.
	Receive(ctx context.Context, sessionID string, file UploadedFile, commit CommitFn) (*docsystem.UploadStatus, error)
}
