package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"satchel/internal/auth"
	"satchel/internal/config"
	"satchel/internal/domain/repositories"
	libRepo "satchel/internal/domain/repositories/library"
	"satchel/internal/handler"
	"satchel/internal/middleware"
	"satchel/internal/palette"
	"satchel/internal/repository/memory"
	"satchel/internal/repository/postgres"
	postgresLib "satchel/internal/repository/postgres/library"
	serviceLib "satchel/internal/service/library"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create repositories. Without a database URL the server runs on the
	// in-memory store; dev only, state is lost on restart.
	var (
		folderRepo libRepo.FolderRepository
		fileRepo   libRepo.FileRepository
		txManager  repositories.TransactionManager
	)

	if cfg.DatabaseURL != "" {
		ctx := context.Background()
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		logger.Info("database connected",
			"max_conns", 25,
			"min_conns", 5,
		)

		tables := postgres.NewTableNames(cfg.TablePrefix)
		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		}
		folderRepo = postgresLib.NewFolderRepository(repoConfig)
		fileRepo = postgresLib.NewFileRepository(repoConfig)
		txManager = postgres.NewTransactionManager(pool, logger)
	} else {
		if cfg.Environment == "prod" {
			log.Fatal("DATABASE_URL is required in prod")
		}
		logger.Warn("no DATABASE_URL configured, using in-memory store")

		store := memory.NewStore()
		folderRepo = memory.NewFolderRepository(store)
		fileRepo = memory.NewFileRepository(store)
		txManager = memory.NewTransactionManager()
	}

	// Initialize the color tag palette
	paletteRegistry, err := palette.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize palette: %v", err)
	}
	logger.Info("palette initialized", "colors", len(paletteRegistry.List()))

	// Create library services
	bootstrapper := serviceLib.NewRootBootstrapper(folderRepo, txManager, logger)
	folderService := serviceLib.NewFolderService(folderRepo, fileRepo, paletteRegistry, txManager, logger)
	fileService := serviceLib.NewFileService(fileRepo, folderRepo, txManager, logger)
	treeService := serviceLib.NewTreeService(folderRepo, fileRepo, logger)
	searchService := serviceLib.NewSearchService(folderRepo, fileRepo, logger)
	bulkService := serviceLib.NewBulkService(folderService, fileService, logger)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	fileHandler := handler.NewFileHandler(fileService, logger)
	treeHandler := handler.NewTreeHandler(treeService, bootstrapper, logger)
	searchHandler := handler.NewSearchHandler(searchService, logger)
	bulkHandler := handler.NewBulkHandler(bulkService, logger)
	paletteHandler := handler.NewPaletteHandler(paletteRegistry)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Tree routes
	mux.HandleFunc("GET /api/tree", treeHandler.GetTree)
	mux.HandleFunc("GET /api/tree/root", treeHandler.GetRoot)
	mux.HandleFunc("GET /api/tree/destinations", treeHandler.ListDestinations)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("GET /api/folders/{id}/children", folderHandler.ListChildren)

	// File routes
	mux.HandleFunc("POST /api/files", fileHandler.CreateFile)
	mux.HandleFunc("GET /api/files/{id}", fileHandler.GetFile)
	mux.HandleFunc("PATCH /api/files/{id}", fileHandler.UpdateFile)
	mux.HandleFunc("DELETE /api/files/{id}", fileHandler.DeleteFile)
	mux.HandleFunc("PUT /api/files/{id}/subject", fileHandler.LinkSubject)
	mux.HandleFunc("PUT /api/files/{id}/unit", fileHandler.LinkUnit)

	// Search route
	mux.HandleFunc("GET /api/search", searchHandler.Search)

	// Bulk routes
	mux.HandleFunc("POST /api/bulk/move", bulkHandler.BulkMove)
	mux.HandleFunc("POST /api/bulk/delete", bulkHandler.BulkDelete)

	// Palette route
	mux.HandleFunc("GET /api/palette", paletteHandler.ListColors)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	if cfg.DevOwnerID != "" && cfg.Environment != "prod" {
		logger.Warn("DEV MODE: static owner auth enabled (NEVER use in production!)", "owner_id", cfg.DevOwnerID)
		root = middleware.StaticOwner(cfg.DevOwnerID)(root)
	} else {
		jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer jwtVerifier.Close()
		root = middleware.Auth(jwtVerifier, logger)(root)
	}
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
