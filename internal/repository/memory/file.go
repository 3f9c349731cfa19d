package memory

import (
	"context"
	"fmt"
	"sort"

	"satchel/internal/domain"
	models "satchel/internal/domain/models/library"
	libRepo "satchel/internal/domain/repositories/library"
)

type fileRepository struct {
	store *Store
}

// NewFileRepository creates an in-memory file repository
func NewFileRepository(store *Store) libRepo.FileRepository {
	return &fileRepository{store: store}
}

func (r *fileRepository) Create(ctx context.Context, file *models.File) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.files[file.ID]; exists {
		return fmt.Errorf("file '%s': %w", file.Name, domain.ErrConflict)
	}
	if _, ok := r.store.folders[file.FolderID]; !ok {
		return fmt.Errorf("folder %s: %w", file.FolderID, domain.ErrDestinationNotFound)
	}

	clone := *file
	r.store.files[file.ID] = &clone
	r.store.track(file.ID)
	return nil
}

func (r *fileRepository) GetByID(ctx context.Context, id, ownerID string) (*models.File, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	file, ok := r.store.files[id]
	if !ok || file.OwnerID != ownerID {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	clone := *file
	return &clone, nil
}

func (r *fileRepository) Update(ctx context.Context, file *models.File) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.files[file.ID]
	if !ok || existing.OwnerID != file.OwnerID {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}
	if _, ok := r.store.folders[file.FolderID]; !ok {
		return fmt.Errorf("folder %s: %w", file.FolderID, domain.ErrDestinationNotFound)
	}

	clone := *file
	r.store.files[file.ID] = &clone
	return nil
}

func (r *fileRepository) Delete(ctx context.Context, id, ownerID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	file, ok := r.store.files[id]
	if !ok || file.OwnerID != ownerID {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.files, id)
	return nil
}

func (r *fileRepository) DeleteByFolderIDs(ctx context.Context, folderIDs []string, ownerID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	member := make(map[string]struct{}, len(folderIDs))
	for _, id := range folderIDs {
		member[id] = struct{}{}
	}

	for id, file := range r.store.files {
		if file.OwnerID != ownerID {
			continue
		}
		if _, ok := member[file.FolderID]; ok {
			delete(r.store.files, id)
		}
	}
	return nil
}

func (r *fileRepository) ListByFolder(ctx context.Context, folderID string, ownerID string) ([]models.File, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var files []models.File
	for _, file := range r.store.files {
		if file.OwnerID == ownerID && file.FolderID == folderID {
			files = append(files, *file)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (r *fileRepository) ListAll(ctx context.Context, ownerID string) ([]models.File, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make([]string, 0, len(r.store.files))
	for id, file := range r.store.files {
		if file.OwnerID == ownerID {
			ids = append(ids, id)
		}
	}
	r.store.sortByInsertion(ids)

	files := make([]models.File, 0, len(ids))
	for _, id := range ids {
		files = append(files, *r.store.files[id])
	}
	return files, nil
}

func (r *fileRepository) ClearSubjectRef(ctx context.Context, subjectRef string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, file := range r.store.files {
		if file.SubjectRef != nil && *file.SubjectRef == subjectRef {
			file.SubjectRef = nil
		}
	}
	return nil
}

func (r *fileRepository) ClearUnitRef(ctx context.Context, unitRef string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, file := range r.store.files {
		if file.UnitRef != nil && *file.UnitRef == unitRef {
			file.UnitRef = nil
		}
	}
	return nil
}
