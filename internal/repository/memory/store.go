package memory

import (
	"context"
	"log/slog"
	"sync"

	"docvault/internal/domain/models/docsystem"
	"docvault/internal/domain/repositories"

	"github.com/google/uuid"
)

// Store is the single owner of all session state. It is constructed once at
// start-up and shared by every repository built on it.
//
// Thread-safe: reads take the read lock, writes the write lock. Inside
// ExecTx the transaction already holds the write lock and repository calls
// made with the transaction context skip locking.
type Store struct {
	mu     sync.RWMutex
	st     *state
	logger *slog.Logger
}

// state holds the entity collections in creation order
type state struct {
	documents []*docsystem.Document
	folders   []*docsystem.Folder
	tags      []*docsystem.Tag
	users     []*docsystem.User
	blobs     map[string]*docsystem.Blob
}

// NewStore creates an empty store
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		st: &state{
			blobs: make(map[string]*docsystem.Blob),
		},
		logger: logger,
	}
}

// rlock acquires the read lock unless ctx runs inside this store's transaction
func (s *Store) rlock(ctx context.Context) func() {
	if repositories.InTx(ctx, s) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

// lock acquires the write lock unless ctx runs inside this store's transaction
func (s *Store) lock(ctx context.Context) func() {
	if repositories.InTx(ctx, s) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// clone deep-copies the collections. Blobs are immutable once stored, so the
// map is copied but the blobs are shared.
func (st *state) clone() *state {
	c := &state{
		documents: make([]*docsystem.Document, 0, len(st.documents)),
		folders:   make([]*docsystem.Folder, 0, len(st.folders)),
		tags:      make([]*docsystem.Tag, 0, len(st.tags)),
		users:     make([]*docsystem.User, 0, len(st.users)),
		blobs:     make(map[string]*docsystem.Blob, len(st.blobs)),
	}
	for _, d := range st.documents {
		c.documents = append(c.documents, d.Clone())
	}
	for _, f := range st.folders {
		c.folders = append(c.folders, f.Clone())
	}
	for _, t := range st.tags {
		tag := *t
		c.tags = append(c.tags, &tag)
	}
	for _, u := range st.users {
		user := *u
		c.users = append(c.users, &user)
	}
	for ref, b := range st.blobs {
		c.blobs[ref] = b
	}
	return c
}

// newID returns a session-unique identifier
func newID() string {
	return uuid.NewString()
}
