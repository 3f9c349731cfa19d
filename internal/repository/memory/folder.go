package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"satchel/internal/domain"
	models "satchel/internal/domain/models/library"
	libRepo "satchel/internal/domain/repositories/library"
)

type folderRepository struct {
	store *Store
}

// NewFolderRepository creates an in-memory folder repository
func NewFolderRepository(store *Store) libRepo.FolderRepository {
	return &folderRepository{store: store}
}

func (r *folderRepository) Create(ctx context.Context, folder *models.Folder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.folders[folder.ID]; exists {
		return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
	}

	clone := *folder
	r.store.folders[folder.ID] = &clone
	r.store.track(folder.ID)
	return nil
}

func (r *folderRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	folder, ok := r.store.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	clone := *folder
	return &clone, nil
}

func (r *folderRepository) Update(ctx context.Context, folder *models.Folder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.folders[folder.ID]
	if !ok || existing.OwnerID != folder.OwnerID {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	clone := *folder
	r.store.folders[folder.ID] = &clone
	return nil
}

func (r *folderRepository) Delete(ctx context.Context, id, ownerID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	folder, ok := r.store.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.folders, id)
	return nil
}

func (r *folderRepository) DeleteByIDs(ctx context.Context, ids []string, ownerID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, id := range ids {
		if folder, ok := r.store.folders[id]; ok && folder.OwnerID == ownerID {
			delete(r.store.folders, id)
		}
	}
	return nil
}

func (r *folderRepository) ListChildren(ctx context.Context, parentID string, ownerID string) ([]models.Folder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var children []models.Folder
	for _, folder := range r.store.folders {
		if folder.OwnerID == ownerID && folder.ParentID != nil && *folder.ParentID == parentID {
			children = append(children, *folder)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
	return children, nil
}

func (r *folderRepository) ListAll(ctx context.Context, ownerID string) ([]models.Folder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make([]string, 0, len(r.store.folders))
	for id, folder := range r.store.folders {
		if folder.OwnerID == ownerID {
			ids = append(ids, id)
		}
	}
	r.store.sortByInsertion(ids)

	folders := make([]models.Folder, 0, len(ids))
	for _, id := range ids {
		folders = append(folders, *r.store.folders[id])
	}
	return folders, nil
}

func (r *folderRepository) FindRoot(ctx context.Context, ownerID string) (*models.Folder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.findRootLocked(ownerID)
}

func (r *folderRepository) findRootLocked(ownerID string) (*models.Folder, error) {
	for _, folder := range r.store.folders {
		if folder.OwnerID == ownerID && folder.ParentID == nil {
			clone := *folder
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("root folder for %s: %w", ownerID, domain.ErrNotFound)
}

// EnsureRoot finds or creates the owner's root folder. Check and create run
// under one lock, so racing bootstraps converge on the same record.
func (r *folderRepository) EnsureRoot(ctx context.Context, ownerID, name string) (*models.Folder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if root, err := r.findRootLocked(ownerID); err == nil {
		return root, nil
	}

	now := time.Now()
	root := &models.Folder{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		ParentID:  nil,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.store.folders[root.ID] = root
	r.store.track(root.ID)

	clone := *root
	return &clone, nil
}
