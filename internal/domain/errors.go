package domain

import "errors"

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Library error kinds. All of these are recoverable: callers surface them as
// a no-op or a user-facing message, never as a process failure.
var (
	// ErrInvalidName rejects renames/creates whose trimmed name is empty.
	ErrInvalidName = errors.New("name is empty or whitespace")

	// ErrRootDeletionForbidden guards the single root folder from delete.
	ErrRootDeletionForbidden = errors.New("root folder cannot be deleted")

	// ErrSelfMove rejects moving a folder into itself.
	ErrSelfMove = errors.New("folder cannot be moved into itself")

	// ErrCycleDetected rejects moving a folder into its own subtree.
	ErrCycleDetected = errors.New("move would create a cycle")

	// ErrDestinationNotFound rejects moves whose destination folder does not exist.
	ErrDestinationNotFound = errors.New("destination folder not found")

	// ErrCorruptedTree signals that a parent-link walk exceeded the total
	// folder count. Invariants forbid this state; the traversal bound exists
	// so corrupted data fails loudly instead of looping forever.
	ErrCorruptedTree = errors.New("tree is corrupted: parent links do not terminate")

	// ErrCommitFailed wraps persistence commit failures so callers can tell
	// "state is provisional" apart from validation rejections.
	ErrCommitFailed = errors.New("commit failed")
)
