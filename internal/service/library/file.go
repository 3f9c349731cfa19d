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

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type fileService struct {
	fileRepo   libRepo.FileRepository
	folderRepo libRepo.FolderRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo libRepo.FileRepository,
	folderRepo libRepo.FolderRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) libSvc.FileService {
	return &fileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateFile attaches a new file record to an existing folder
func (s *fileService) CreateFile(ctx context.Context, req *models.CreateFileRequest) (*models.File, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("file name: %w", domain.ErrInvalidName)
	}

	now := time.Now()
	file := &models.File{
		ID:        uuid.NewString(),
		OwnerID:   req.OwnerID,
		FolderID:  req.FolderID,
		Name:      name,
		Payload:   req.Payload,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.folderRepo.GetByID(ctx, req.FolderID, req.OwnerID); err != nil {
			return fmt.Errorf("folder %s: %w", req.FolderID, domain.ErrDestinationNotFound)
		}
		return s.fileRepo.Create(ctx, file)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("file created",
		"id", file.ID,
		"name", file.Name,
		"folder_id", file.FolderID,
		"payload_bytes", len(file.Payload),
	)

	return file, nil
}

// GetFile retrieves a file record
func (s *fileService) GetFile(ctx context.Context, id, ownerID string) (*models.File, error) {
	return s.fileRepo.GetByID(ctx, id, ownerID)
}

// UpdateFile renames and/or moves a file
func (s *fileService) UpdateFile(ctx context.Context, id string, req *models.UpdateFileRequest) (*models.File, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var file *models.File
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		file, err = s.fileRepo.GetByID(ctx, id, req.OwnerID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fmt.Errorf("file name: %w", domain.ErrInvalidName)
			}
			file.Name = name
		}

		if req.FolderID != nil {
			if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, req.OwnerID); err != nil {
				return fmt.Errorf("folder %s: %w", *req.FolderID, domain.ErrDestinationNotFound)
			}
			file.FolderID = *req.FolderID
			s.logger.Debug("moving file", "file_id", id, "folder_id", *req.FolderID)
		}

		file.UpdatedAt = time.Now()
		return s.fileRepo.Update(ctx, file)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("file updated",
		"id", file.ID,
		"name", file.Name,
		"folder_id", file.FolderID,
	)

	return file, nil
}

// DeleteFile removes a single file record; no cascade
func (s *fileService) DeleteFile(ctx context.Context, id, ownerID string) error {
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		return s.fileRepo.Delete(ctx, id, ownerID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("file deleted", "id", id, "owner_id", ownerID)
	return nil
}

// LinkSubject sets the weak subject reference on a file. The reference is
// stored as-is; referential integrity beyond assignment time belongs to the
// subsystem owning subjects.
func (s *fileService) LinkSubject(ctx context.Context, fileID string, req *models.LinkRequest) (*models.File, error) {
	return s.link(ctx, fileID, req, func(file *models.File, ref string) {
		file.SubjectRef = &ref
	}, "subject")
}

// LinkUnit sets the weak unit reference on a file
func (s *fileService) LinkUnit(ctx context.Context, fileID string, req *models.LinkRequest) (*models.File, error) {
	return s.link(ctx, fileID, req, func(file *models.File, ref string) {
		file.UnitRef = &ref
	}, "unit")
}

func (s *fileService) link(ctx context.Context, fileID string, req *models.LinkRequest, set func(*models.File, string), kind string) (*models.File, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Ref, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var file *models.File
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		file, err = s.fileRepo.GetByID(ctx, fileID, req.OwnerID)
		if err != nil {
			return err
		}
		set(file, req.Ref)
		file.UpdatedAt = time.Now()
		return s.fileRepo.Update(ctx, file)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("file linked", "id", fileID, "kind", kind, "ref", req.Ref)
	return file, nil
}

// UnlinkSubject nullifies a subject reference on every file carrying it.
// Files survive the linked entity; only the back-reference is cleared.
func (s *fileService) UnlinkSubject(ctx context.Context, subjectRef string) error {
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		return s.fileRepo.ClearSubjectRef(ctx, subjectRef)
	})
	if err != nil {
		return err
	}
	s.logger.Info("subject reference cleared", "ref", subjectRef)
	return nil
}

// UnlinkUnit nullifies a unit reference on every file carrying it
func (s *fileService) UnlinkUnit(ctx context.Context, unitRef string) error {
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		return s.fileRepo.ClearUnitRef(ctx, unitRef)
	})
	if err != nil {
		return err
	}
	s.logger.Info("unit reference cleared", "ref", unitRef)
	return nil
}

// validateCreateRequest validates a file creation request
func (s *fileService) validateCreateRequest(req *models.CreateFileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.FolderID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFileNameLength),
		),
		validation.Field(&req.Payload, validation.Length(0, config.MaxPayloadBytes)),
	)
}

// validateUpdateRequest validates a file update request
func (s *fileService) validateUpdateRequest(req *models.UpdateFileRequest) error {
	if req.Name == nil && req.FolderID == nil {
		return fmt.Errorf("at least one field must be provided")
	}

	rules := []*validation.FieldRules{
		validation.Field(&req.OwnerID, validation.Required),
	}

	if req.Name != nil {
		rules = append(rules,
			validation.Field(&req.Name,
				validation.Required,
				validation.Length(1, config.MaxFileNameLength),
			),
		)
	}

	return validation.ValidateStruct(req, rules...)
}
