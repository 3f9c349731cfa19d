package library

import (
	"context"

	"satchel/internal/domain/models/library"
)

// FileRepository defines data access operations for file records.
type FileRepository interface {
	// Create creates a new file record
	Create(ctx context.Context, file *library.File) error

	// GetByID retrieves a file by ID
	GetByID(ctx context.Context, id, ownerID string) (*library.File, error)

	// Update updates a file (rename, move, link refs)
	Update(ctx context.Context, file *library.File) error

	// Delete deletes a single file record
	Delete(ctx context.Context, id, ownerID string) error

	// DeleteByFolderIDs deletes every file attached to any of the given
	// folders. Used by recursive folder deletion.
	DeleteByFolderIDs(ctx context.Context, folderIDs []string, ownerID string) error

	// ListByFolder lists the files directly attached to one folder
	ListByFolder(ctx context.Context, folderID string, ownerID string) ([]library.File, error)

	// ListAll retrieves every file of an owner (flat list, no payloads)
	ListAll(ctx context.Context, ownerID string) ([]library.File, error)

	// ClearSubjectRef nullifies the given subject reference on every file
	// that carries it. Called by the tagging collaborator when the linked
	// entity disappears; files themselves are never cascade-deleted.
	ClearSubjectRef(ctx context.Context, subjectRef string) error

	// ClearUnitRef nullifies the given unit reference on every file
	ClearUnitRef(ctx context.Context, unitRef string) error
}
