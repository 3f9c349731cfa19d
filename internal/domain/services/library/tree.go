package library

import (
	"context"

	"satchel/internal/domain/models/library"
)

// TreeService defines read-only views over the whole tree.
type TreeService interface {
	// GetTree builds the nested folder/file tree for an owner
	GetTree(ctx context.Context, ownerID string) (*library.TreeNode, error)

	// ListDestinations returns every folder root-first depth-first,
	// annotated with which are invalid targets for the move in progress
	// (the moved folder itself and its descendants). moving is nil when no
	// move is in progress or a file is being moved.
	ListDestinations(ctx context.Context, ownerID string, moving *library.Item) ([]library.Destination, error)
}

// SearchService filters the whole flat record set by name.
type SearchService interface {
	// Search matches query case-insensitively as a substring of every
	// folder and file name, regardless of folder context. A blank query
	// deactivates the search and returns no matches.
	Search(ctx context.Context, ownerID, query string) (*library.SearchResults, error)
}

// BulkService applies a move or delete to a whole selection. Operations are
// best-effort: rejected members are reported as skipped, never abort the batch.
type BulkService interface {
	BulkMove(ctx context.Context, ownerID string, sel library.Selection, destinationID string) (*library.BulkReport, error)
	BulkDelete(ctx context.Context, ownerID string, sel library.Selection) (*library.BulkReport, error)
}

// RootBootstrapper guarantees exactly one parentless folder per owner,
// creating it lazily on first access.
type RootBootstrapper interface {
	// EnsureRoot returns the owner's root folder, creating it if absent.
	// Idempotent under racing initialization.
	EnsureRoot(ctx context.Context, ownerID string) (*library.Folder, error)
}
