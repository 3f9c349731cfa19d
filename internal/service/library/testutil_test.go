package library

import (
	"context"
	"io"
	"log/slog"
	"testing"

	models "satchel/internal/domain/models/library"
	libRepo "satchel/internal/domain/repositories/library"
	libSvc "satchel/internal/domain/services/library"
	"satchel/internal/palette"
	"satchel/internal/repository/memory"
)

// testEnv wires the services against the in-memory store, the same graph the
// server builds minus the transport.
type testEnv struct {
	folderRepo libRepo.FolderRepository
	fileRepo   libRepo.FileRepository

	folders      libSvc.FolderService
	files        libSvc.FileService
	tree         libSvc.TreeService
	search       libSvc.SearchService
	bulk         libSvc.BulkService
	bootstrapper libSvc.RootBootstrapper
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := memory.NewStore()
	folderRepo := memory.NewFolderRepository(store)
	fileRepo := memory.NewFileRepository(store)
	txManager := memory.NewTransactionManager()

	registry, err := palette.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	folders := NewFolderService(folderRepo, fileRepo, registry, txManager, logger)
	files := NewFileService(fileRepo, folderRepo, txManager, logger)

	return &testEnv{
		folderRepo:   folderRepo,
		fileRepo:     fileRepo,
		folders:      folders,
		files:        files,
		tree:         NewTreeService(folderRepo, fileRepo, logger),
		search:       NewSearchService(folderRepo, fileRepo, logger),
		bulk:         NewBulkService(folders, files, logger),
		bootstrapper: NewRootBootstrapper(folderRepo, txManager, logger),
	}
}

func (e *testEnv) mustRoot(t *testing.T, ownerID string) *models.Folder {
	t.Helper()
	root, err := e.bootstrapper.EnsureRoot(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("EnsureRoot() error = %v", err)
	}
	return root
}

func (e *testEnv) mustCreateFolder(t *testing.T, ownerID, parentID, name string) *models.Folder {
	t.Helper()
	folder, err := e.folders.CreateFolder(context.Background(), &models.CreateFolderRequest{
		OwnerID:  ownerID,
		ParentID: parentID,
		Name:     name,
	})
	if err != nil {
		t.Fatalf("CreateFolder(%q) error = %v", name, err)
	}
	return folder
}

func (e *testEnv) mustCreateFile(t *testing.T, ownerID, folderID, name string) *models.File {
	t.Helper()
	file, err := e.files.CreateFile(context.Background(), &models.CreateFileRequest{
		OwnerID:  ownerID,
		FolderID: folderID,
		Name:     name,
	})
	if err != nil {
		t.Fatalf("CreateFile(%q) error = %v", name, err)
	}
	return file
}

func strPtr(s string) *string {
	return &s
}
