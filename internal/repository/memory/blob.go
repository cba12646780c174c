package memory

import (
	"context"

	"docvault/internal/domain"
	models "docvault/internal/domain/models/docsystem"
	docsysRepo "docvault/internal/domain/repositories/docsystem"
)

// blobRefPrefix marks handles issued by the in-memory blob store
const blobRefPrefix = "blob:"

// BlobRepository keeps uploaded bytes in memory for the session
type BlobRepository struct {
	store *Store
}

// NewBlobRepository creates a new blob repository
func NewBlobRepository(store *Store) docsysRepo.BlobRepository {
	return &BlobRepository{store: store}
}

// Put copies data into the store and returns its ref
func (r *BlobRepository) Put(ctx context.Context, data []byte, mimeType string) (string, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	ref := blobRefPrefix + newID()
	r.store.st.blobs[ref] = &models.Blob{
		Ref:      ref,
		MimeType: mimeType,
		Size:     int64(len(data)),
		Data:     append([]byte(nil), data...),
	}
	r.store.logger.Debug("blob stored", "ref", ref, "size", len(data))
	return ref, nil
}

// Get dereferences a ref. The returned data must not be modified.
func (r *BlobRepository) Get(ctx context.Context, ref string) (*models.Blob, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	blob, ok := r.store.st.blobs[ref]
	if !ok {
		return nil, domain.NewNotFound("blob", ref)
	}
	b := *blob
	return &b, nil
}

func (r *BlobRepository) Delete(ctx context.Context, ref string) (bool, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.st.blobs[ref]; !ok {
		return false, nil
	}
	delete(r.store.st.blobs, ref)
	return true, nil
}
