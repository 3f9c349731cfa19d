package library

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"satchel/internal/config"
	"satchel/internal/domain"
	models "satchel/internal/domain/models/library"
	"satchel/internal/domain/repositories"
	libRepo "satchel/internal/domain/repositories/library"
	libSvc "satchel/internal/domain/services/library"
	"satchel/internal/palette"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type folderService struct {
	folderRepo libRepo.FolderRepository
	fileRepo   libRepo.FileRepository
	palette    *palette.Registry
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo libRepo.FolderRepository,
	fileRepo libRepo.FileRepository,
	pal *palette.Registry,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) libSvc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		palette:    pal,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateFolder creates a new folder under an existing parent
func (s *folderService) CreateFolder(ctx context.Context, req *models.CreateFolderRequest) (*models.Folder, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("folder name: %w", domain.ErrInvalidName)
	}

	now := time.Now()
	folder := &models.Folder{
		ID:        uuid.NewString(),
		OwnerID:   req.OwnerID,
		ParentID:  &req.ParentID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.folderRepo.GetByID(ctx, req.ParentID, req.OwnerID); err != nil {
			return fmt.Errorf("parent folder %s: %w", req.ParentID, domain.ErrDestinationNotFound)
		}
		return s.folderRepo.Create(ctx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", req.ParentID,
		"owner_id", req.OwnerID,
	)

	return folder, nil
}

// GetFolder retrieves a folder
func (s *folderService) GetFolder(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, id, ownerID)
}

// UpdateFolder applies rename, recolor and/or move in one call. Validation
// happens against the current tree before anything is written; a rejected
// request leaves the folder exactly as it was.
func (s *folderService) UpdateFolder(ctx context.Context, id string, req *models.UpdateFolderRequest) (*models.Folder, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		folder, err = s.folderRepo.GetByID(ctx, id, req.OwnerID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fmt.Errorf("folder name: %w", domain.ErrInvalidName)
			}
			folder.Name = name
		}

		if req.ColorTag.Present {
			if req.ColorTag.Value == nil {
				folder.ColorTag = nil
			} else {
				if !s.palette.Has(*req.ColorTag.Value) {
					return fmt.Errorf("%w: unknown color tag %q", domain.ErrValidation, *req.ColorTag.Value)
				}
				tag := *req.ColorTag.Value
				folder.ColorTag = &tag
			}
		}

		if req.ParentID.Present {
			if err := s.applyMove(ctx, folder, req.ParentID.Value); err != nil {
				return err
			}
		}

		folder.UpdatedAt = time.Now()
		return s.folderRepo.Update(ctx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// applyMove validates a folder move against the current tree and sets the new
// parent. The destination must exist, must not be the folder itself and must
// not lie inside the subtree being moved.
func (s *folderService) applyMove(ctx context.Context, folder *models.Folder, destinationID *string) error {
	if destinationID == nil {
		return fmt.Errorf("%w: move requires a destination folder", domain.ErrValidation)
	}
	if folder.IsRoot() {
		return fmt.Errorf("%w: root folder cannot be moved", domain.ErrValidation)
	}
	if *destinationID == folder.ID {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrSelfMove)
	}

	folders, err := s.folderRepo.ListAll(ctx, folder.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to load folders: %w", err)
	}
	idx := NewIndex(folders, nil)

	if _, ok := idx.Folder(*destinationID); !ok {
		return fmt.Errorf("folder %s: %w", *destinationID, domain.ErrDestinationNotFound)
	}

	inSubtree, err := idx.IsDescendant(*destinationID, folder.ID)
	if err != nil {
		return err
	}
	if inSubtree {
		return fmt.Errorf("folder %s into %s: %w", folder.ID, *destinationID, domain.ErrCycleDetected)
	}

	dest := *destinationID
	folder.ParentID = &dest

	s.logger.Debug("moving folder to new parent",
		"folder_id", folder.ID,
		"destination_id", dest,
	)
	return nil
}

// DeleteFolder deletes a folder and all its contents recursively: every file
// attached to the subtree first, then every descendant folder, then the
// folder itself. Subtree collection is iterative, so pathological depth
// cannot exhaust the stack.
func (s *folderService) DeleteFolder(ctx context.Context, id, ownerID string) error {
	var removedFolders int
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		folder, err := s.folderRepo.GetByID(ctx, id, ownerID)
		if err != nil {
			return err
		}
		if folder.IsRoot() {
			return fmt.Errorf("folder %s: %w", id, domain.ErrRootDeletionForbidden)
		}

		folders, err := s.folderRepo.ListAll(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to load folders: %w", err)
		}
		idx := NewIndex(folders, nil)

		subtree, err := idx.SubtreeFolderIDs(id)
		if err != nil {
			return err
		}
		removedFolders = len(subtree)

		if err := s.fileRepo.DeleteByFolderIDs(ctx, subtree, ownerID); err != nil {
			return fmt.Errorf("failed to delete files in subtree: %w", err)
		}
		if err := s.folderRepo.DeleteByIDs(ctx, subtree, ownerID); err != nil {
			return fmt.Errorf("failed to delete folders: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", id,
		"owner_id", ownerID,
		"folders_removed", removedFolders,
	)
	return nil
}

// ListChildren lists the direct child folders and files of a folder
func (s *folderService) ListChildren(ctx context.Context, folderID, ownerID string) (*models.FolderContents, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}

	childFolders, err := s.folderRepo.ListChildren(ctx, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list child folders: %w", err)
	}

	files, err := s.fileRepo.ListByFolder(ctx, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return &models.FolderContents{
		Folder:  folder,
		Folders: childFolders,
		Files:   files,
	}, nil
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *models.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.ParentID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
		),
	)
}

// validateUpdateRequest validates a folder update request
func (s *folderService) validateUpdateRequest(req *models.UpdateFolderRequest) error {
	// At least one field must be provided
	if req.Name == nil && !req.ParentID.Present && !req.ColorTag.Present {
		return fmt.Errorf("at least one field must be provided")
	}

	rules := []*validation.FieldRules{
		validation.Field(&req.OwnerID, validation.Required),
	}

	if req.Name != nil {
		rules = append(rules,
			validation.Field(&req.Name,
				validation.Required,
				validation.Length(1, config.MaxFolderNameLength),
			),
		)
	}

	return validation.ValidateStruct(req, rules...)
}
