package library

import (
	"context"

	"satchel/internal/domain/models/library"
)

// FolderRepository defines data access operations for folders.
// Tree edges are stored identifier fields (parent_id), never embedded
// children; all structure queries resolve by lookup.
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *library.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id, ownerID string) (*library.Folder, error)

	// Update updates a folder (rename, recolor, move)
	Update(ctx context.Context, folder *library.Folder) error

	// Delete deletes a single folder record, no cascade
	Delete(ctx context.Context, id, ownerID string) error

	// DeleteByIDs deletes the given folder records in one statement
	DeleteByIDs(ctx context.Context, ids []string, ownerID string) error

	// ListChildren lists immediate child folders
	ListChildren(ctx context.Context, parentID string, ownerID string) ([]library.Folder, error)

	// ListAll retrieves every folder of an owner (flat list)
	ListAll(ctx context.Context, ownerID string) ([]library.Folder, error)

	// FindRoot returns the owner's parentless folder, or domain.ErrNotFound
	FindRoot(ctx context.Context, ownerID string) (*library.Folder, error)

	// EnsureRoot atomically finds or creates the owner's root folder. Racing
	// calls must converge on the same record instead of creating duplicates.
	EnsureRoot(ctx context.Context, ownerID, name string) (*library.Folder, error)
}
