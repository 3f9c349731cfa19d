package library

import (
	"context"
	"fmt"
	"log/slog"

	models "satchel/internal/domain/models/library"
	libRepo "satchel/internal/domain/repositories/library"
	libSvc "satchel/internal/domain/services/library"
)

// treeService implements the TreeService interface
type treeService struct {
	folderRepo libRepo.FolderRepository
	fileRepo   libRepo.FileRepository
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	folderRepo libRepo.FolderRepository,
	fileRepo libRepo.FileRepository,
	logger *slog.Logger,
) libSvc.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		logger:     logger,
	}
}

// GetTree builds and returns the nested folder/file tree for an owner
func (s *treeService) GetTree(ctx context.Context, ownerID string) (*models.TreeNode, error) {
	allFolders, err := s.folderRepo.ListAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load folders: %w", err)
	}

	allFiles, err := s.fileRepo.ListAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load files: %w", err)
	}

	// Build folder hierarchy using 3-pass algorithm
	folderMap := make(map[string]*models.FolderTreeNode)
	var rootFolderIDs []string

	// First pass: create all folder nodes
	for _, folder := range allFolders {
		folderMap[folder.ID] = &models.FolderTreeNode{
			ID:        folder.ID,
			Name:      folder.Name,
			ParentID:  folder.ParentID,
			ColorTag:  folder.ColorTag,
			CreatedAt: folder.CreatedAt,
			Folders:   []*models.FolderTreeNode{},
			Files:     []models.FileTreeNode{},
		}
	}

	// Second pass: nest folders by connecting children to parents
	for _, folder := range allFolders {
		node := folderMap[folder.ID]
		if folder.ParentID == nil {
			rootFolderIDs = append(rootFolderIDs, folder.ID)
		} else {
			if parent, exists := folderMap[*folder.ParentID]; exists {
				parent.Folders = append(parent.Folders, node)
			}
		}
	}

	// Third pass: add files to their folders
	for _, file := range allFiles {
		fileNode := models.FileTreeNode{
			ID:         file.ID,
			Name:       file.Name,
			FolderID:   file.FolderID,
			SubjectRef: file.SubjectRef,
			UnitRef:    file.UnitRef,
			UpdatedAt:  file.UpdatedAt,
		}
		if parent, exists := folderMap[file.FolderID]; exists {
			parent.Files = append(parent.Files, fileNode)
		}
	}

	rootFolders := make([]*models.FolderTreeNode, 0, len(rootFolderIDs))
	for _, folderID := range rootFolderIDs {
		if node, exists := folderMap[folderID]; exists {
			rootFolders = append(rootFolders, node)
		}
	}

	tree := &models.TreeNode{
		Folders: rootFolders,
		Files:   []models.FileTreeNode{},
	}

	s.logger.Debug("library tree built",
		"owner_id", ownerID,
		"folder_count", len(allFolders),
		"file_count", len(allFiles),
	)

	return tree, nil
}

// ListDestinations returns every folder root-first depth-first, annotated
// with which are invalid targets for the move in progress: when a folder is
// being moved, itself and its whole subtree are disabled so presentation
// layers can gray them out. File moves disable nothing.
func (s *treeService) ListDestinations(ctx context.Context, ownerID string, moving *models.Item) ([]models.Destination, error) {
	allFolders, err := s.folderRepo.ListAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load folders: %w", err)
	}
	idx := NewIndex(allFolders, nil)

	disabled := make(map[string]struct{})
	if moving != nil && moving.Kind == models.KindFolder {
		subtree, err := idx.SubtreeFolderIDs(moving.ID)
		if err != nil {
			return nil, err
		}
		for _, id := range subtree {
			disabled[id] = struct{}{}
		}
	}

	destinations := make([]models.Destination, 0, len(allFolders))
	idx.WalkDepthFirst(func(f *models.Folder, depth int) {
		_, off := disabled[f.ID]
		destinations = append(destinations, models.Destination{
			ID:       f.ID,
			Name:     f.Name,
			Depth:    depth,
			Disabled: off,
		})
	})

	return destinations, nil
}
