package library

import (
	"context"
	"log/slog"
	"sync"

	models "satchel/internal/domain/models/library"
	"satchel/internal/domain/repositories"
	libRepo "satchel/internal/domain/repositories/library"
	libSvc "satchel/internal/domain/services/library"
)

// DefaultRootName is the fixed label of the lazily created root folder.
const DefaultRootName = "Documents"

// rootBootstrapper guarantees exactly one parentless folder per owner. Per
// owner it is a two-state machine: uninitialized until the first EnsureRoot
// resolves, then ready, holding the root's identity. The create itself is an
// atomic find-or-create in the repository, so a second racing bootstrap
// converges on the already-created root instead of inserting a duplicate.
type rootBootstrapper struct {
	folderRepo libRepo.FolderRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger

	mu    sync.Mutex
	ready map[string]string // ownerID -> root folder id
}

// NewRootBootstrapper creates a new root bootstrapper
func NewRootBootstrapper(
	folderRepo libRepo.FolderRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) libSvc.RootBootstrapper {
	return &rootBootstrapper{
		folderRepo: folderRepo,
		txManager:  txManager,
		ready:      make(map[string]string),
		logger:     logger,
	}
}

// EnsureRoot returns the owner's root folder, creating it on first access.
func (b *rootBootstrapper) EnsureRoot(ctx context.Context, ownerID string) (*models.Folder, error) {
	b.mu.Lock()
	rootID, ok := b.ready[ownerID]
	b.mu.Unlock()

	if ok {
		return b.folderRepo.GetByID(ctx, rootID, ownerID)
	}

	var root *models.Folder
	err := b.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		root, err = b.folderRepo.EnsureRoot(ctx, ownerID, DefaultRootName)
		return err
	})
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.ready[ownerID] = root.ID
	b.mu.Unlock()

	b.logger.Info("root folder ready",
		"id", root.ID,
		"owner_id", ownerID,
		"name", root.Name,
	)

	return root, nil
}
