package library

import (
	"context"

	"satchel/internal/domain/models/library"
)

// FileService defines the file record operations.
type FileService interface {
	// CreateFile attaches a new file record to an existing folder
	CreateFile(ctx context.Context, req *library.CreateFileRequest) (*library.File, error)

	// GetFile retrieves a file record
	GetFile(ctx context.Context, id, ownerID string) (*library.File, error)

	// UpdateFile renames and/or moves a file. Moves to a folder that does
	// not exist fail with ErrDestinationNotFound.
	UpdateFile(ctx context.Context, id string, req *library.UpdateFileRequest) (*library.File, error)

	// DeleteFile removes a single file record; no cascade
	DeleteFile(ctx context.Context, id, ownerID string) error

	// LinkSubject sets the weak subject reference on a file
	LinkSubject(ctx context.Context, fileID string, req *library.LinkRequest) (*library.File, error)

	// LinkUnit sets the weak unit reference on a file
	LinkUnit(ctx context.Context, fileID string, req *library.LinkRequest) (*library.File, error)

	// UnlinkSubject nullifies a subject reference on every file carrying it.
	// Invoked by the subsystem owning subjects when one is removed.
	UnlinkSubject(ctx context.Context, subjectRef string) error

	// UnlinkUnit nullifies a unit reference on every file carrying it
	UnlinkUnit(ctx context.Context, unitRef string) error
}
