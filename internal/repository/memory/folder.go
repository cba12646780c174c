package memory

import (
	"context"
	"strings"
	"time"

	"docvault/internal/domain"
	models "docvault/internal/domain/models/docsystem"
	docsysRepo "docvault/internal/domain/repositories/docsystem"
)

// FolderRepository implements the FolderRepository interface
type FolderRepository struct {
	store *Store
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(store *Store) docsysRepo.FolderRepository {
	return &FolderRepository{store: store}
}

// Create creates a new folder
func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if folder.ID == "" {
		folder.ID = newID()
	} else if r.indexOf(folder.ID) >= 0 {
		return domain.NewValidation("id", "folder %q already exists", folder.ID)
	}
	now := time.Now()
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = now
	}
	if folder.UpdatedAt.IsZero() {
		folder.UpdatedAt = folder.CreatedAt
	}

	stored := folder.Clone()
	stored.Path = ""
	r.store.st.folders = append(r.store.st.folders, stored)
	return nil
}

// GetByID retrieves a folder by ID
func (r *FolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.NewNotFound("folder", id)
	}
	return r.store.st.folders[i].Clone(), nil
}

// Update updates a folder
func (r *FolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	i := r.indexOf(folder.ID)
	if i < 0 {
		return domain.NewNotFound("folder", folder.ID)
	}
	stored := folder.Clone()
	stored.Path = ""
	r.store.st.folders[i] = stored
	return nil
}

// DeleteMany removes every listed folder
func (r *FolderRepository) DeleteMany(ctx context.Context, ids []string) (int, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	targets := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		targets[id] = struct{}{}
	}

	kept := make([]*models.Folder, 0, len(r.store.st.folders))
	removed := 0
	for _, f := range r.store.st.folders {
		if _, ok := targets[f.ID]; ok {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	r.store.st.folders = kept
	return removed, nil
}

// ListChildren lists immediate child folders
func (r *FolderRepository) ListChildren(ctx context.Context, parentID *string) ([]models.Folder, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	folders := make([]models.Folder, 0)
	for _, f := range r.store.st.folders {
		if f.ChildOf(parentID) {
			folders = append(folders, *f.Clone())
		}
	}
	return folders, nil
}

// GetAll retrieves all folders
func (r *FolderRepository) GetAll(ctx context.Context) ([]models.Folder, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	folders := make([]models.Folder, 0, len(r.store.st.folders))
	for _, f := range r.store.st.folders {
		folders = append(folders, *f.Clone())
	}
	return folders, nil
}

// GetPath computes the display path by walking parents up to the root.
// The walk stops at a dangling parent or a revisited folder.
func (r *FolderRepository) GetPath(ctx context.Context, folderID string) (string, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	i := r.indexOf(folderID)
	if i < 0 {
		return "", domain.NewNotFound("folder", folderID)
	}

	var segments []string
	visited := make(map[string]struct{})
	current := r.store.st.folders[i]
	for current != nil {
		if _, seen := visited[current.ID]; seen {
			break
		}
		visited[current.ID] = struct{}{}
		segments = append(segments, current.Name)

		if current.ParentID == nil {
			break
		}
		j := r.indexOf(*current.ParentID)
		if j < 0 {
			break
		}
		current = r.store.st.folders[j]
	}

	// Reverse to root-first order
	for a, b := 0, len(segments)-1; a < b; a, b = a+1, b-1 {
		segments[a], segments[b] = segments[b], segments[a]
	}
	return strings.Join(segments, "/"), nil
}

// indexOf must be called with a lock held
func (r *FolderRepository) indexOf(id string) int {
	for i, f := range r.store.st.folders {
		if f.ID == id {
			return i
		}
	}
	return -1
}
