package library

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"satchel/internal/domain"
	models "satchel/internal/domain/models/library"
	libRepo "satchel/internal/domain/repositories/library"
	"satchel/internal/repository/postgres"
)

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *postgres.RepositoryConfig) libRepo.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new file record
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, folder_id, name, payload, subject_ref, unit_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		file.ID,
		file.OwnerID,
		file.FolderID,
		file.Name,
		file.Payload,
		file.SubjectRef,
		file.UnitRef,
		file.CreatedAt,
		file.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("folder %s: %w", file.FolderID, domain.ErrDestinationNotFound)
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// GetByID retrieves a file by ID, payload included
func (r *PostgresFileRepository) GetByID(ctx context.Context, id, ownerID string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, folder_id, name, payload, subject_ref, unit_ref, created_at, updated_at
		FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)

	var file models.File
	err := exec.QueryRow(ctx, query, id, ownerID).Scan(
		&file.ID,
		&file.OwnerID,
		&file.FolderID,
		&file.Name,
		&file.Payload,
		&file.SubjectRef,
		&file.UnitRef,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &file, nil
}

// Update updates a file (rename, move, link refs). The payload is immutable
// after creation and not part of the update.
func (r *PostgresFileRepository) Update(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = $1, name = $2, subject_ref = $3, unit_ref = $4, updated_at = $5
		WHERE id = $6 AND owner_id = $7
	`, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query,
		file.FolderID,
		file.Name,
		file.SubjectRef,
		file.UnitRef,
		file.UpdatedAt,
		file.ID,
		file.OwnerID,
	)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("folder %s: %w", file.FolderID, domain.ErrDestinationNotFound)
		}
		return fmt.Errorf("update file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a single file record
func (r *PostgresFileRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByFolderIDs deletes every file attached to any of the given folders
func (r *PostgresFileRepository) DeleteByFolderIDs(ctx context.Context, folderIDs []string, ownerID string) error {
	if len(folderIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE folder_id = ANY($1) AND owner_id = $2
	`, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, folderIDs, ownerID); err != nil {
		return fmt.Errorf("delete files by folder: %w", err)
	}

	return nil
}

// ListByFolder lists the files directly attached to one folder, no payloads
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, folderID string, ownerID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, folder_id, name, subject_ref, unit_ref, created_at, updated_at
		FROM %s
		WHERE owner_id = $1 AND folder_id = $2
		ORDER BY name ASC
	`, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, ownerID, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	return scanFiles(rows)
}

// ListAll retrieves every file of an owner (flat list, no payloads)
func (r *PostgresFileRepository) ListAll(ctx context.Context, ownerID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, folder_id, name, subject_ref, unit_ref, created_at, updated_at
		FROM %s
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	return scanFiles(rows)
}

// ClearSubjectRef nullifies the given subject reference on every file
func (r *PostgresFileRepository) ClearSubjectRef(ctx context.Context, subjectRef string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET subject_ref = NULL WHERE subject_ref = $1
	`, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, subjectRef); err != nil {
		return fmt.Errorf("clear subject ref: %w", err)
	}
	return nil
}

// ClearUnitRef nullifies the given unit reference on every file
func (r *PostgresFileRepository) ClearUnitRef(ctx context.Context, unitRef string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET unit_ref = NULL WHERE unit_ref = $1
	`, r.tables.Files)

	exec := postgres.GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, unitRef); err != nil {
		return fmt.Errorf("clear unit ref: %w", err)
	}
	return nil
}

func scanFiles(rows pgx.Rows) ([]models.File, error) {
	var files []models.File
	for rows.Next() {
		var file models.File
		err := rows.Scan(
			&file.ID,
			&file.OwnerID,
			&file.FolderID,
			&file.Name,
			&file.SubjectRef,
			&file.UnitRef,
			&file.CreatedAt,
			&file.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}
