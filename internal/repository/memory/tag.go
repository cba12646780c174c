package memory

import (
	"context"

	"docvault/internal/domain"
	models "docvault/internal/domain/models/docsystem"
	docsysRepo "docvault/internal/domain/repositories/docsystem"
)

// TagRepository implements the TagRepository interface
type TagRepository struct {
	store *Store
}

// NewTagRepository creates a new tag repository
func NewTagRepository(store *Store) docsysRepo.TagRepository {
	return &TagRepository{store: store}
}

func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if tag.ID == "" {
		tag.ID = newID()
	} else if r.indexOf(tag.ID) >= 0 {
		return domain.NewValidation("id", "tag %q already exists", tag.ID)
	}
	stored := *tag
	r.store.st.tags = append(r.store.st.tags, &stored)
	return nil
}

func (r *TagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.NewNotFound("tag", id)
	}
	tag := *r.store.st.tags[i]
	return &tag, nil
}

func (r *TagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	tags := make([]models.Tag, 0, len(r.store.st.tags))
	for _, t := range r.store.st.tags {
		tags = append(tags, *t)
	}
	return tags, nil
}

func (r *TagRepository) Delete(ctx context.Context, id string) (bool, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	tags := r.store.st.tags
	r.store.st.tags = append(tags[:i:i], tags[i+1:]...)
	return true, nil
}

func (r *TagRepository) indexOf(id string) int {
	for i, t := range r.store.st.tags {
		if t.ID == id {
			return i
		}
	}
	return -1
}
