package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"satchel/internal/domain"
	models "satchel/internal/domain/models/library"
	libSvc "satchel/internal/domain/services/library"
	"satchel/internal/httputil"
)

// bulkService applies a move or delete across a whole selection. Members are
// processed independently and best-effort: a member rejected by validation is
// reported as skipped with its reason, and the rest of the batch proceeds.
// Only infrastructure failures abort the batch.
type bulkService struct {
	folders libSvc.FolderService
	files   libSvc.FileService
	logger  *slog.Logger
}

// NewBulkService creates a new bulk service
func NewBulkService(
	folders libSvc.FolderService,
	files libSvc.FileService,
	logger *slog.Logger,
) libSvc.BulkService {
	return &bulkService{
		folders: folders,
		files:   files,
		logger:  logger,
	}
}

// BulkMove moves every selected folder and file into destinationID. Folder
// members that would self-move or create a cycle are skipped, not fatal.
func (s *bulkService) BulkMove(ctx context.Context, ownerID string, sel models.Selection, destinationID string) (*models.BulkReport, error) {
	report := newReport()

	for _, id := range sel.FolderIDs {
		item := models.Item{Kind: models.KindFolder, ID: id}
		dest := destinationID
		_, err := s.folders.UpdateFolder(ctx, id, &models.UpdateFolderRequest{
			OwnerID:  ownerID,
			ParentID: optionalString(&dest),
		})
		if err := report.record(item, err); err != nil {
			return nil, err
		}
	}

	for _, id := range sel.FileIDs {
		item := models.Item{Kind: models.KindFile, ID: id}
		dest := destinationID
		_, err := s.files.UpdateFile(ctx, id, &models.UpdateFileRequest{
			OwnerID:  ownerID,
			FolderID: &dest,
		})
		if err := report.record(item, err); err != nil {
			return nil, err
		}
	}

	s.logger.Info("bulk move finished",
		"owner_id", ownerID,
		"destination_id", destinationID,
		"applied", len(report.Applied),
		"skipped", len(report.Skipped),
	)

	return &report.BulkReport, nil
}

// BulkDelete deletes every selected file and recursively deletes every
// selected folder. Members already gone (deleted as a descendant of an
// earlier member) are skipped. The root is excluded from selections upstream,
// but the per-folder guard still holds here.
func (s *bulkService) BulkDelete(ctx context.Context, ownerID string, sel models.Selection) (*models.BulkReport, error) {
	report := newReport()

	for _, id := range sel.FolderIDs {
		item := models.Item{Kind: models.KindFolder, ID: id}
		err := s.folders.DeleteFolder(ctx, id, ownerID)
		if err := report.record(item, err); err != nil {
			return nil, err
		}
	}

	for _, id := range sel.FileIDs {
		item := models.Item{Kind: models.KindFile, ID: id}
		err := s.files.DeleteFile(ctx, id, ownerID)
		if err := report.record(item, err); err != nil {
			return nil, err
		}
	}

	s.logger.Info("bulk delete finished",
		"owner_id", ownerID,
		"applied", len(report.Applied),
		"skipped", len(report.Skipped),
	)

	return &report.BulkReport, nil
}

type reportBuilder struct {
	models.BulkReport
}

func newReport() *reportBuilder {
	return &reportBuilder{models.BulkReport{
		Applied: []models.Item{},
		Skipped: []models.SkippedItem{},
	}}
}

// record files the member under applied or skipped. A non-recoverable error
// is returned and aborts the batch.
func (r *reportBuilder) record(item models.Item, err error) error {
	if err == nil {
		r.Applied = append(r.Applied, item)
		return nil
	}
	if reason, ok := skipReason(err); ok {
		r.Skipped = append(r.Skipped, models.SkippedItem{Item: item, Reason: reason})
		return nil
	}
	return fmt.Errorf("bulk operation aborted on %s %s: %w", item.Kind, item.ID, err)
}

// skipReason classifies recoverable rejections into stable reason codes.
func skipReason(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrSelfMove):
		return "self_move", true
	case errors.Is(err, domain.ErrCycleDetected):
		return "cycle_detected", true
	case errors.Is(err, domain.ErrDestinationNotFound):
		return "destination_not_found", true
	case errors.Is(err, domain.ErrRootDeletionForbidden):
		return "root_deletion_forbidden", true
	case errors.Is(err, domain.ErrInvalidName):
		return "invalid_name", true
	case errors.Is(err, domain.ErrNotFound):
		return "not_found", true
	case errors.Is(err, domain.ErrValidation):
		return "validation_failed", true
	default:
		return "", false
	}
}

func optionalString(v *string) httputil.OptionalString {
	return httputil.OptionalString{Present: true, Value: v}
}
