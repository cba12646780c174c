package memory

import (
	"context"

	"docvault/internal/domain"
	models "docvault/internal/domain/models/docsystem"
	docsysRepo "docvault/internal/domain/repositories/docsystem"
)

// UserRepository implements the UserRepository interface
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(store *Store) docsysRepo.UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if user.ID == "" {
		user.ID = newID()
	}
	for _, u := range r.store.st.users {
		if u.ID == user.ID {
			return domain.NewValidation("id", "user %q already exists", user.ID)
		}
	}
	stored := *user
	r.store.st.users = append(r.store.st.users, &stored)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	for _, u := range r.store.st.users {
		if u.ID == id {
			user := *u
			return &user, nil
		}
	}
	return nil, domain.NewNotFound("user", id)
}

func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	users := make([]models.User, 0, len(r.store.st.users))
	for _, u := range r.store.st.users {
		users = append(users, *u)
	}
	return users, nil
}
