package library

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"satchel/internal/domain"
	models "satchel/internal/domain/models/library"
	libRepo "satchel/internal/domain/repositories/library"
	"satchel/internal/repository/postgres"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *postgres.RepositoryConfig) libRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, parent_id, name, color_tag, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		folder.ID,
		folder.OwnerID,
		folder.ParentID,
		folder.Name,
		folder.ColorTag,
		folder.CreatedAt,
		folder.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, parent_id, name, color_tag, created_at, updated_at
		FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)

	var folder models.Folder
	err := exec.QueryRow(ctx, query, id, ownerID).Scan(
		&folder.ID,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.Name,
		&folder.ColorTag,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// Update updates a folder
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, name = $2, color_tag = $3, updated_at = $4
		WHERE id = $5 AND owner_id = $6
	`, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query,
		folder.ParentID,
		folder.Name,
		folder.ColorTag,
		folder.UpdatedAt,
		folder.ID,
		folder.OwnerID,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			// Updating parent_id to NULL would collide with the one-root index.
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a single folder record
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id, ownerID)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("folder still has children: %w", domain.ErrConflict)
		}
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByIDs deletes the given folder records in one statement. Children
// must be listed before (or with) their parents so the self-referencing
// foreign key never dangles mid-statement; the caller passes a whole subtree.
func (r *PostgresFolderRepository) DeleteByIDs(ctx context.Context, ids []string, ownerID string) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = ANY($1) AND owner_id = $2
	`, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, ids, ownerID); err != nil {
		return fmt.Errorf("delete folders: %w", err)
	}

	return nil
}

// ListChildren lists immediate child folders ordered by name
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID string, ownerID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, parent_id, name, color_tag, created_at, updated_at
		FROM %s
		WHERE owner_id = $1 AND parent_id = $2
		ORDER BY name ASC
	`, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, ownerID, parentID)
	if err != nil {
		return nil, fmt.Errorf("list folder children: %w", err)
	}
	defer rows.Close()

	return scanFolders(rows)
}

// ListAll retrieves every folder of an owner (flat list)
func (r *PostgresFolderRepository) ListAll(ctx context.Context, ownerID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, parent_id, name, color_tag, created_at, updated_at
		FROM %s
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	return scanFolders(rows)
}

// FindRoot returns the owner's parentless folder
func (r *PostgresFolderRepository) FindRoot(ctx context.Context, ownerID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, parent_id, name, color_tag, created_at, updated_at
		FROM %s
		WHERE owner_id = $1 AND parent_id IS NULL
	`, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)

	var folder models.Folder
	err := exec.QueryRow(ctx, query, ownerID).Scan(
		&folder.ID,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.Name,
		&folder.ColorTag,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("root folder for %s: %w", ownerID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find root: %w", err)
	}

	return &folder, nil
}

// EnsureRoot atomically finds or creates the owner's root folder. The insert
// targets the partial unique index on (owner_id) WHERE parent_id IS NULL, so
// racing bootstraps converge on one row: the loser's insert is a no-op and
// the follow-up select returns the winner's root.
func (r *PostgresFolderRepository) EnsureRoot(ctx context.Context, ownerID, name string) (*models.Folder, error) {
	now := time.Now()
	insert := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, parent_id, name, created_at, updated_at)
		VALUES ($1, $2, NULL, $3, $4, $4)
		ON CONFLICT (owner_id) WHERE parent_id IS NULL DO NOTHING
	`, r.tables.Folders)

	exec := postgres.GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, insert, uuid.NewString(), ownerID, name, now); err != nil {
		return nil, fmt.Errorf("ensure root: %w", err)
	}

	return r.FindRoot(ctx, ownerID)
}

func scanFolders(rows pgx.Rows) ([]models.Folder, error) {
	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.OwnerID,
			&folder.ParentID,
			&folder.Name,
			&folder.ColorTag,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}
