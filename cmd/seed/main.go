package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"satchel/internal/config"
	library "satchel/internal/domain/models/library"
	"satchel/internal/palette"
	"satchel/internal/repository/postgres"
	postgresLib "satchel/internal/repository/postgres/library"
	serviceLib "satchel/internal/service/library"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed sample data")
	clearData := flag.Bool("clear-data", false, "Clear all folders and files (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("Ensuring database schema is up to date...")
	if err := postgres.CreateSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	// Exit early if schema-only mode
	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	ownerID := cfg.DevOwnerID
	if ownerID == "" {
		log.Fatal("DEV_OWNER_ID is required to seed or clear sample data")
	}

	// Exit early if clear-data mode (just clear and exit)
	if *clearData {
		log.Println("Clearing existing folders and files...")
		if err := clearOwnerData(ctx, pool, tables, ownerID); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Data cleared successfully")
		return
	}

	// Create repositories and services
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgresLib.NewFolderRepository(repoConfig)
	fileRepo := postgresLib.NewFileRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	paletteRegistry, err := palette.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize palette: %v", err)
	}

	bootstrapper := serviceLib.NewRootBootstrapper(folderRepo, txManager, logger)
	folderService := serviceLib.NewFolderService(folderRepo, fileRepo, paletteRegistry, txManager, logger)
	fileService := serviceLib.NewFileService(fileRepo, folderRepo, txManager, logger)

	// Clear existing data so re-seeding is repeatable
	log.Println("Clearing existing folders and files...")
	if err := clearOwnerData(ctx, pool, tables, ownerID); err != nil {
		log.Printf("Warning: could not clear data: %v", err)
	}

	// Seed the sample library
	log.Println("Seeding sample library...")

	root, err := bootstrapper.EnsureRoot(ctx, ownerID)
	if err != nil {
		log.Fatalf("Failed to bootstrap root: %v", err)
	}
	log.Printf("Root folder ready: %s (ID: %s)", root.Name, root.ID)

	folderIDs := make(map[string]string)
	folderIDs[""] = root.ID

	for _, f := range seedFolders() {
		parentID, ok := folderIDs[f.parent]
		if !ok {
			log.Fatalf("Seed folder '%s' references unknown parent '%s'", f.name, f.parent)
		}
		folder, err := folderService.CreateFolder(ctx, &library.CreateFolderRequest{
			OwnerID:  ownerID,
			ParentID: parentID,
			Name:     f.name,
		})
		if err != nil {
			log.Fatalf("Failed to create folder '%s': %v", f.name, err)
		}
		folderIDs[f.path()] = folder.ID
		log.Printf("Created folder: %s", f.path())
	}

	for i, fl := range seedFiles() {
		folderID, ok := folderIDs[fl.folder]
		if !ok {
			log.Fatalf("Seed file '%s' references unknown folder '%s'", fl.name, fl.folder)
		}
		file, err := fileService.CreateFile(ctx, &library.CreateFileRequest{
			OwnerID:  ownerID,
			FolderID: folderID,
			Name:     fl.name,
			Payload:  []byte(fl.body),
		})
		if err != nil {
			log.Fatalf("Failed to create file '%s': %v", fl.name, err)
		}
		log.Printf("Created file %d: %s (ID: %s)", i+1, fl.name, file.ID)
	}

	log.Println("Seeding complete!")
}

type seedFolder struct {
	parent string // path of the parent, "" for root
	name   string
}

func (f seedFolder) path() string {
	if f.parent == "" {
		return f.name
	}
	return f.parent + "/" + f.name
}

type seedFile struct {
	folder string // folder path, "" for root
	name   string
	body   string
}

func seedFolders() []seedFolder {
	return []seedFolder{
		{parent: "", name: "Mathematics"},
		{parent: "Mathematics", name: "Algebra"},
		{parent: "Mathematics", name: "Geometry"},
		{parent: "", name: "Sciences"},
		{parent: "Sciences", name: "Biology"},
		{parent: "", name: "Archive"},
	}
}

func seedFiles() []seedFile {
	return []seedFile{
		{folder: "", name: "Welcome.txt", body: "Drop your documents anywhere in the tree."},
		{folder: "Mathematics/Algebra", name: "Quadratics.pdf", body: "sample payload"},
		{folder: "Mathematics/Geometry", name: "Triangles.pdf", body: "sample payload"},
		{folder: "Sciences/Biology", name: "Cells.pdf", body: "sample payload"},
		{folder: "Archive", name: "Old syllabus.doc", body: "sample payload"},
	}
}

// dropAllTables drops the library tables; children first so the folder
// self-reference never blocks the drop.
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	statements := []string{
		fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", tables.Files),
		fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", tables.Folders),
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// clearOwnerData deletes one owner's folders and files, keeping the schema
func clearOwnerData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, ownerID string) error {
	deleteFiles := fmt.Sprintf("DELETE FROM %s WHERE owner_id = $1", tables.Files)
	if _, err := pool.Exec(ctx, deleteFiles, ownerID); err != nil {
		return err
	}

	// Children before parents; repeat until the self-referencing FK lets
	// everything go.
	deleteLeaves := fmt.Sprintf(`
		DELETE FROM %s WHERE owner_id = $1 AND id NOT IN (
			SELECT parent_id FROM %s WHERE owner_id = $1 AND parent_id IS NOT NULL
		)
	`, tables.Folders, tables.Folders)
	for {
		result, err := pool.Exec(ctx, deleteLeaves, ownerID)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return nil
		}
	}
}
