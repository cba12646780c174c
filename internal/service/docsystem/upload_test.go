package docsystem

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"docvault/internal/domain"
	models "docvault/internal/domain/models/docsystem"
	docsysSvc "docvault/internal/domain/services/docsystem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker() *UploadTracker {
	return NewUploadTracker(UploadConfig{
		MaxBytes:   32,
		ChunkBytes: 4,
		Retention:  time.Minute,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// recordingCommit stores what it was handed and returns a fixed document id
type recordingCommit struct {
	calls int
	file  *docsysSvc.ReceivedFile
	err   error
}

func (c *recordingCommit) commit(ctx context.Context, file *docsysSvc.ReceivedFile) (string, error) {
	c.calls++
	c.file = file
	if c.err != nil {
		return "", c.err
	}
	return "doc-1", nil
}

// hookReader runs hook before its first read
type hookReader struct {
	r    io.Reader
	hook func()
	done bool
}

func (h *hookReader) Read(p []byte) (int, error) {
	if !h.done {
		h.done = true
		h.hook()
	}
	return h.r.Read(p)
}

func uploadOf(name, content string) docsysSvc.UploadedFile {
	return docsysSvc.UploadedFile{
		Filename: name,
		Size:     int64(len(content)),
		Content:  strings.NewReader(content),
	}
}

func TestUploadTracker_Completes(t *testing.T) {
	tracker := newTestTracker()
	ctx := context.Background()

	session, err := tracker.CreateSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.UploadIdle, session.State)

	updates, unsubscribe, err := tracker.Subscribe(ctx, session.ID)
	require.NoError(t, err)
	defer unsubscribe()

	c := &recordingCommit{}
	status, err := tracker.Receive(ctx, session.ID, uploadOf("notes.txt", "0123456789"), c.commit)
	require.NoError(t, err)

	assert.Equal(t, models.UploadDone, status.State)
	assert.Equal(t, 100, status.Percent)
	assert.Equal(t, "doc-1", status.DocumentID)
	require.Equal(t, 1, c.calls)
	assert.Equal(t, []byte("0123456789"), c.file.Data)
	assert.Equal(t, "text/plain", c.file.MimeType)

	var states []models.UploadState
	var percents []int
	for u := range updates {
		states = append(states, u.State)
		percents = append(percents, u.Percent)
	}
	require.NotEmpty(t, states)
	assert.Equal(t, models.UploadIdle, states[0])
	assert.Equal(t, models.UploadDone, states[len(states)-1])
	for i := 1; i < len(percents); i++ {
		assert.GreaterOrEqual(t, percents[i], percents[i-1])
	}
}

func TestUploadTracker_NoSessionID(t *testing.T) {
	tracker := newTestTracker()
	c := &recordingCommit{}

	status, err := tracker.Receive(context.Background(), "", uploadOf("a.pdf", "pdf"), c.commit)
	require.NoError(t, err)
	assert.Equal(t, models.UploadDone, status.State)

	got, err := tracker.GetSession(context.Background(), status.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UploadDone, got.State)
}

func TestUploadTracker_Rejections(t *testing.T) {
	tests := []struct {
		name string
		file docsysSvc.UploadedFile
	}{
		{name: "extension not allowed", file: uploadOf("run.exe", "MZ")},
		{name: "declared size over the limit", file: uploadOf("big.pdf", strings.Repeat("x", 33))},
		{
			name: "undeclared size over the limit",
			file: docsysSvc.UploadedFile{Filename: "big.pdf", Content: strings.NewReader(strings.Repeat("x", 40))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := newTestTracker()
			c := &recordingCommit{}

			status, err := tracker.Receive(context.Background(), "", tt.file, c.commit)
			assert.ErrorIs(t, err, domain.ErrValidation)
			require.NotNil(t, status)
			assert.Equal(t, models.UploadFailed, status.State)
			assert.Zero(t, c.calls)
		})
	}
}

func TestUploadTracker_CancelBeforeCommitStoresNothing(t *testing.T) {
	tracker := newTestTracker()
	ctx := context.Background()

	session, err := tracker.CreateSession(ctx)
	require.NoError(t, err)

	content := &hookReader{
		r: bytes.NewReader([]byte("0123456789")),
		hook: func() {
			_, err := tracker.CancelSession(ctx, session.ID)
			require.NoError(t, err)
		},
	}

	c := &recordingCommit{}
	status, err := tracker.Receive(ctx, session.ID, docsysSvc.UploadedFile{
		Filename: "notes.txt",
		Size:     10,
		Content:  content,
	}, c.commit)

	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.Equal(t, models.UploadCancelled, status.State)
	assert.Zero(t, c.calls)
}

func TestUploadTracker_ContextCancelled(t *testing.T) {
	tracker := newTestTracker()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &recordingCommit{}
	status, err := tracker.Receive(ctx, "", uploadOf("notes.txt", "hello"), c.commit)

	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.Equal(t, models.UploadCancelled, status.State)
	assert.Zero(t, c.calls)
}

func TestUploadTracker_CommitFailure(t *testing.T) {
	tracker := newTestTracker()
	c := &recordingCommit{err: errors.New("disk full")}

	status, err := tracker.Receive(context.Background(), "", uploadOf("notes.txt", "hello"), c.commit)

	assert.EqualError(t, err, "disk full")
	assert.Equal(t, models.UploadFailed, status.State)
	assert.Equal(t, "disk full", status.Error)
}

func TestUploadTracker_TerminalStatesAbsorb(t *testing.T) {
	tracker := newTestTracker()
	ctx := context.Background()
	c := &recordingCommit{}

	done, err := tracker.Receive(ctx, "", uploadOf("a.pdf", "pdf"), c.commit)
	require.NoError(t, err)

	// A cancel after the commit has no effect
	after, err := tracker.CancelSession(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UploadDone, after.State)

	// A finished session cannot take another file
	_, err = tracker.Receive(ctx, done.ID, uploadOf("b.pdf", "pdf"), c.commit)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 1, c.calls)

	// Subscribing to a finished session yields its final status only
	updates, unsubscribe, err := tracker.Subscribe(ctx, done.ID)
	require.NoError(t, err)
	defer unsubscribe()
	final, ok := <-updates
	require.True(t, ok)
	assert.Equal(t, models.UploadDone, final.State)
	_, ok = <-updates
	assert.False(t, ok)
}

func TestUploadTracker_UnknownSession(t *testing.T) {
	tracker := newTestTracker()
	ctx := context.Background()

	_, err := tracker.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = tracker.CancelSession(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, _, err = tracker.Subscribe(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = tracker.Receive(ctx, "missing", uploadOf("a.pdf", "x"), (&recordingCommit{}).commit)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUploadTracker_PruneExpired(t *testing.T) {
	tracker := newTestTracker()
	ctx := context.Background()

	idle, err := tracker.CreateSession(ctx)
	require.NoError(t, err)
	done, err := tracker.Receive(ctx, "", uploadOf("a.pdf", "pdf"), (&recordingCommit{}).commit)
	require.NoError(t, err)

	assert.Zero(t, tracker.PruneExpired(time.Now()))
	assert.Equal(t, 1, tracker.PruneExpired(time.Now().Add(time.Hour)))

	_, err = tracker.GetSession(ctx, done.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = tracker.GetSession(ctx, idle.ID)
	assert.NoError(t, err)
}
