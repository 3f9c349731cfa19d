package library

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	models "satchel/internal/domain/models/library"
	libRepo "satchel/internal/domain/repositories/library"
	libSvc "satchel/internal/domain/services/library"
)

type searchService struct {
	folderRepo libRepo.FolderRepository
	fileRepo   libRepo.FileRepository
	logger     *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(
	folderRepo libRepo.FolderRepository,
	fileRepo libRepo.FileRepository,
	logger *slog.Logger,
) libSvc.SearchService {
	return &searchService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		logger:     logger,
	}
}

// Search scans the owner's entire flat record set and keeps every folder and
// file whose name contains the query, case-insensitively, regardless of where
// it sits in the tree. A blank query means search is inactive: no filtering,
// no matches. The scan is O(total records) per call; the corpus is one
// user's document library, so no incremental index is kept.
func (s *searchService) Search(ctx context.Context, ownerID, query string) (*models.SearchResults, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return &models.SearchResults{
			Active:  false,
			Folders: []models.Folder{},
			Files:   []models.File{},
		}, nil
	}

	folders, err := s.folderRepo.ListAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load folders: %w", err)
	}
	files, err := s.fileRepo.ListAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load files: %w", err)
	}

	results := &models.SearchResults{
		Active:  true,
		Folders: []models.Folder{},
		Files:   []models.File{},
	}

	for _, folder := range folders {
		if strings.Contains(strings.ToLower(folder.Name), needle) {
			results.Folders = append(results.Folders, folder)
		}
	}
	for _, file := range files {
		if strings.Contains(strings.ToLower(file.Name), needle) {
			results.Files = append(results.Files, file)
		}
	}

	s.logger.Debug("search executed",
		"owner_id", ownerID,
		"query", needle,
		"folder_matches", len(results.Folders),
		"file_matches", len(results.Files),
	)

	return results, nil
}
