package library

import (
	"context"

	"satchel/internal/domain/models/library"
)

// FolderService defines the folder mutation operations. Every operation is
// validated against the current tree before anything is written; a validation
// failure leaves state untouched.
type FolderService interface {
	// CreateFolder creates a folder under an existing parent
	CreateFolder(ctx context.Context, req *library.CreateFolderRequest) (*library.Folder, error)

	// GetFolder retrieves a folder
	GetFolder(ctx context.Context, id, ownerID string) (*library.Folder, error)

	// UpdateFolder applies rename, recolor and/or move in one call.
	// Rename trims whitespace and rejects empty results with ErrInvalidName.
	// Move rejects self-moves (ErrSelfMove), destinations inside the moved
	// subtree (ErrCycleDetected) and unknown destinations
	// (ErrDestinationNotFound). The root folder can never be moved.
	UpdateFolder(ctx context.Context, id string, req *library.UpdateFolderRequest) (*library.Folder, error)

	// DeleteFolder recursively deletes a folder, all descendant folders and
	// every file attached to any of them. Deleting the root is forbidden.
	DeleteFolder(ctx context.Context, id, ownerID string) error

	// ListChildren lists direct children only, no recursion
	ListChildren(ctx context.Context, folderID, ownerID string) (*library.FolderContents, error)
}
