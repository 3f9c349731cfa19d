package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateSchema creates the library tables and indexes if they do not exist.
// The partial unique index on (owner_id) WHERE parent_id IS NULL is what
// makes root bootstrapping race-free: a second concurrent insert of a
// parentless folder conflicts instead of producing a duplicate root.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				owner_id TEXT NOT NULL,
				parent_id TEXT REFERENCES %s(id),
				name VARCHAR(255) NOT NULL,
				color_tag TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, tables.Folders, tables.Folders),
		fmt.Sprintf(`
			CREATE UNIQUE INDEX IF NOT EXISTS %s_one_root_per_owner
			ON %s (owner_id) WHERE parent_id IS NULL
		`, tables.Folders, tables.Folders),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_parent_idx ON %s (owner_id, parent_id)
		`, tables.Folders, tables.Folders),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				owner_id TEXT NOT NULL,
				folder_id TEXT NOT NULL REFERENCES %s(id),
				name VARCHAR(255) NOT NULL,
				payload BYTEA,
				subject_ref TEXT,
				unit_ref TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, tables.Files, tables.Folders),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_folder_idx ON %s (owner_id, folder_id)
		`, tables.Files, tables.Files),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_subject_idx ON %s (subject_ref)
		`, tables.Files, tables.Files),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_unit_idx ON %s (unit_ref)
		`, tables.Files, tables.Files),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	return nil
}
