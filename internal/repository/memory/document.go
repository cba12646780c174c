package memory

import (
	"context"
	"time"

	"docvault/internal/domain"
	models "docvault/internal/domain/models/docsystem"
	docsysRepo "docvault/internal/domain/repositories/docsystem"
)

// DocumentRepository implements the DocumentRepository interface
type DocumentRepository struct {
	store *Store
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(store *Store) docsysRepo.DocumentRepository {
	return &DocumentRepository{store: store}
}

// Create stores a copy of doc. ID and timestamps are filled in on doc when empty.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if doc.ID == "" {
		doc.ID = newID()
	} else if r.indexOf(doc.ID) >= 0 {
		return domain.NewValidation("id", "document %q already exists", doc.ID)
	}
	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = doc.CreatedAt
	}

	stored := doc.Clone()
	stored.Tags = nil // resolved on read
	r.store.st.documents = append(r.store.st.documents, stored)
	return nil
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.NewNotFound("document", id)
	}
	return r.store.st.documents[i].Clone(), nil
}

// Update replaces the stored document with a copy of doc
func (r *DocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	i := r.indexOf(doc.ID)
	if i < 0 {
		return domain.NewNotFound("document", doc.ID)
	}
	stored := doc.Clone()
	stored.Tags = nil
	r.store.st.documents[i] = stored
	return nil
}

// Delete removes a document
func (r *DocumentRepository) Delete(ctx context.Context, id string) (bool, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	docs := r.store.st.documents
	r.store.st.documents = append(docs[:i:i], docs[i+1:]...)
	return true, nil
}

// ListByFolder lists documents directly in a folder (nil = root)
func (r *DocumentRepository) ListByFolder(ctx context.Context, folderID *string) ([]models.Document, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	docs := make([]models.Document, 0)
	for _, d := range r.store.st.documents {
		if d.InFolder(folderID) {
			docs = append(docs, *d.Clone())
		}
	}
	return docs, nil
}

// ListAll lists every document in creation order
func (r *DocumentRepository) ListAll(ctx context.Context) ([]models.Document, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	docs := make([]models.Document, 0, len(r.store.st.documents))
	for _, d := range r.store.st.documents {
		docs = append(docs, *d.Clone())
	}
	return docs, nil
}

// DetachFromFolders moves documents of the given folders to root
func (r *DocumentRepository) DetachFromFolders(ctx context.Context, folderIDs []string) (int, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	targets := make(map[string]struct{}, len(folderIDs))
	for _, id := range folderIDs {
		targets[id] = struct{}{}
	}

	now := time.Now()
	moved := 0
	for _, d := range r.store.st.documents {
		if d.FolderID == nil {
			continue
		}
		if _, ok := targets[*d.FolderID]; ok {
			d.FolderID = nil
			d.UpdatedAt = now
			moved++
		}
	}
	return moved, nil
}

// RemoveTag drops a tag id from every document
func (r *DocumentRepository) RemoveTag(ctx context.Context, tagID string) (int, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	now := time.Now()
	changed := 0
	for _, d := range r.store.st.documents {
		if !d.HasTag(tagID) {
			continue
		}
		kept := make([]string, 0, len(d.TagIDs)-1)
		for _, id := range d.TagIDs {
			if id != tagID {
				kept = append(kept, id)
			}
		}
		d.TagIDs = kept
		d.UpdatedAt = now
		changed++
	}
	return changed, nil
}

// indexOf must be called with a lock held
func (r *DocumentRepository) indexOf(id string) int {
	for i, d := range r.store.st.documents {
		if d.ID == id {
			return i
		}
	}
	return -1
}
