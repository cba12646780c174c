package docsystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"docvault/internal/domain"
	models "docvault/internal/domain/models/docsystem"
	docsysSvc "docvault/internal/domain/services/docsystem"

	"github.com/google/uuid"
)

// subscriberBuffer is how many status updates a slow subscriber may lag behind
const subscriberBuffer = 16

// UploadConfig bounds uploads handled by the tracker
type UploadConfig struct {
	MaxBytes   int64
	ChunkBytes int
	Retention  time.Duration // Finished sessions are pruned after this long
}

// UploadTracker implements UploadService. Every session has its own mutex;
// the commit of a session runs under it, so a cancel either lands before the
// commit (nothing stored) or after it (no effect).
type UploadTracker struct {
	mu       sync.Mutex
	sessions map[string]*uploadSession
	cfg      UploadConfig
	logger   *slog.Logger
}

type uploadSession struct {
	mu          sync.Mutex
	status      models.UploadStatus
	subscribers map[int]chan models.UploadStatus
	nextSubID   int
}

// NewUploadTracker creates an upload tracker
func NewUploadTracker(cfg UploadConfig, logger *slog.Logger) *UploadTracker {
	return &UploadTracker{
		sessions: make(map[string]*uploadSession),
		cfg:      cfg,
		logger:   logger,
	}
}

var _ docsysSvc.UploadService = (*UploadTracker)(nil)

// CreateSession opens an idle session
func (t *UploadTracker) CreateSession(ctx context.Context) (*models.UploadStatus, error) {
	sess := t.newSession()
	status := sess.snapshot()
	t.logger.Debug("upload session created", "upload_id", status.ID)
	return &status, nil
}

// GetSession returns the current status of a session
func (t *UploadTracker) GetSession(ctx context.Context, id string) (*models.UploadStatus, error) {
	sess, err := t.lookup(id)
	if err != nil {
		return nil, err
	}
	status := sess.snapshot()
	return &status, nil
}

// CancelSession cancels a non-terminal session
func (t *UploadTracker) CancelSession(ctx context.Context, id string) (*models.UploadStatus, error) {
	sess, err := t.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.status.Cancel() {
		sess.publish()
		t.logger.Info("upload cancelled", "upload_id", id, "percent", sess.status.Percent)
	}
	status := sess.status
	return &status, nil
}

// Subscribe streams status changes, starting with the current status
func (t *UploadTracker) Subscribe(ctx context.Context, id string) (<-chan models.UploadStatus, func(), error) {
	sess, err := t.lookup(id)
	if err != nil {
		return nil, nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	ch := make(chan models.UploadStatus, subscriberBuffer)
	ch <- sess.status
	if sess.status.State.Terminal() {
		close(ch)
		return ch, func() {}, nil
	}

	subID := sess.nextSubID
	sess.nextSubID++
	sess.subscribers[subID] = ch

	unsubscribe := func() {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		if sub, ok := sess.subscribers[subID]; ok {
			delete(sess.subscribers, subID)
			close(sub)
		}
	}
	return ch, unsubscribe, nil
}

// Receive validates and reads the file chunk by chunk, then commits it.
// Progress is the real share of the declared size read so far.
func (t *UploadTracker) Receive(ctx context.Context, sessionID string, file docsysSvc.UploadedFile, commit docsysSvc.CommitFn) (*models.UploadStatus, error) {
	var sess *uploadSession
	if sessionID == "" {
		sess = t.newSession()
	} else {
		var err error
		if sess, err = t.lookup(sessionID); err != nil {
			return nil, err
		}
	}

	mimeType, err := ValidateUploadFilename(file.Filename)
	if err == nil && file.Size > 0 {
		err = ValidateUploadSize(file.Size, t.cfg.MaxBytes)
	}
	if err != nil {
		return t.fail(sess, err)
	}

	if err := t.start(sess, file.Filename); err != nil {
		status := sess.snapshot()
		return &status, err
	}

	data, err := t.read(ctx, sess, file)
	if err != nil {
		if errors.Is(err, domain.ErrCancelled) {
			status := sess.snapshot()
			return &status, err
		}
		return t.fail(sess, err)
	}

	// Commit only while the session is still in progress
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.status.State != models.UploadInProgress {
		return t.cancelled(sess, "session no longer in progress")
	}
	if ctx.Err() != nil {
		sess.status.Cancel()
		sess.publish()
		return t.cancelled(sess, ctx.Err().Error())
	}

	documentID, err := commit(ctx, &docsysSvc.ReceivedFile{
		Filename: file.Filename,
		MimeType: mimeType,
		Data:     data,
	})
	if err != nil {
		sess.status.Fail(err.Error())
		sess.publish()
		status := sess.status
		t.logger.Warn("upload commit failed", "upload_id", status.ID, "filename", file.Filename, "error", err)
		return &status, err
	}

	sess.status.Complete(documentID)
	sess.publish()
	status := sess.status

	t.logger.Info("upload completed",
		"upload_id", status.ID,
		"filename", file.Filename,
		"size", len(data),
		"document_id", documentID,
	)
	return &status, nil
}

// read consumes the file in fixed chunks. Before each chunk the session and
// the context are checked; a cancelled one stops the read.
func (t *UploadTracker) read(ctx context.Context, sess *uploadSession, file docsysSvc.UploadedFile) ([]byte, error) {
	reader := io.LimitReader(file.Content, t.cfg.MaxBytes+1)
	buf := make([]byte, t.cfg.ChunkBytes)
	var data bytes.Buffer

	for {
		if err := ctx.Err(); err != nil {
			sess.mu.Lock()
			if sess.status.Cancel() {
				sess.publish()
			}
			sess.mu.Unlock()
			return nil, fmt.Errorf("%w: %v", domain.ErrCancelled, err)
		}

		n, readErr := io.ReadFull(reader, buf)
		data.Write(buf[:n])
		if int64(data.Len()) > t.cfg.MaxBytes {
			return nil, ValidateUploadSize(int64(data.Len()), t.cfg.MaxBytes)
		}

		sess.mu.Lock()
		if sess.status.State != models.UploadInProgress {
			sess.mu.Unlock()
			return nil, fmt.Errorf("%w: upload %s", domain.ErrCancelled, sess.status.ID)
		}
		if file.Size > 0 {
			// 100 is reserved for the commit
			percent := min(int(int64(data.Len())*100/file.Size), 99)
			if percent != sess.status.Percent && sess.status.Advance(percent) {
				sess.publish()
			}
		}
		sess.mu.Unlock()

		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			return data.Bytes(), nil
		}
		if readErr != nil {
			return nil, fmt.Errorf("read upload: %w", readErr)
		}
	}
}

// PruneExpired drops terminal sessions older than the retention window
func (t *UploadTracker) PruneExpired(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	pruned := 0
	for id, sess := range t.sessions {
		status := sess.snapshot()
		if status.State.Terminal() && now.Sub(status.UpdatedAt) > t.cfg.Retention {
			delete(t.sessions, id)
			pruned++
		}
	}
	return pruned
}

// Run prunes finished sessions periodically until ctx is done
func (t *UploadTracker) Run(ctx context.Context) {
	interval := t.cfg.Retention / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := t.PruneExpired(now); n > 0 {
				t.logger.Debug("upload sessions pruned", "count", n)
			}
		}
	}
}

func (t *UploadTracker) newSession() *uploadSession {
	sess := &uploadSession{
		status:      models.NewUploadStatus(uuid.NewString()),
		subscribers: make(map[int]chan models.UploadStatus),
	}
	t.mu.Lock()
	t.sessions[sess.status.ID] = sess
	t.mu.Unlock()
	return sess
}

func (t *UploadTracker) lookup(id string) (*uploadSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sess, ok := t.sessions[id]
	if !ok {
		return nil, domain.NewNotFound("upload", id)
	}
	return sess, nil
}

func (t *UploadTracker) start(sess *uploadSession, filename string) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.status.Start(filename) {
		sess.publish()
		return nil
	}
	if sess.status.State == models.UploadCancelled {
		return fmt.Errorf("%w: upload %s", domain.ErrCancelled, sess.status.ID)
	}
	return domain.NewValidation("upload_id", "upload %s is already %s", sess.status.ID, sess.status.State)
}

func (t *UploadTracker) fail(sess *uploadSession, err error) (*models.UploadStatus, error) {
	sess.mu.Lock()
	if sess.status.Fail(err.Error()) {
		sess.publish()
	}
	status := sess.status
	sess.mu.Unlock()

	t.logger.Warn("upload failed", "upload_id", status.ID, "error", err)
	return &status, err
}

// cancelled must be called with sess.mu held
func (t *UploadTracker) cancelled(sess *uploadSession, reason string) (*models.UploadStatus, error) {
	status := sess.status
	t.logger.Info("upload aborted before commit", "upload_id", status.ID, "reason", reason)
	return &status, fmt.Errorf("%w: upload %s", domain.ErrCancelled, status.ID)
}

func (s *uploadSession) snapshot() models.UploadStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// publish must be called with s.mu held. Subscribers that fall behind lose
// intermediate updates; the terminal status is always delivered.
func (s *uploadSession) publish() {
	terminal := s.status.State.Terminal()
	for id, ch := range s.subscribers {
		select {
		case ch <- s.status:
		default:
			if terminal {
				// Make room for the final status
				select {
				case <-ch:
				default:
				}
				ch <- s.status
			}
		}
		if terminal {
			close(ch)
			delete(s.subscribers, id)
		}
	}
}
