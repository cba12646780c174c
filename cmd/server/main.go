package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"docvault/internal/config"
	"docvault/internal/handler"
	"docvault/internal/handler/sse"
	"docvault/internal/middleware"
	"docvault/internal/repository/memory"
	"docvault/internal/seed"
	"docvault/internal/service/auth"
	serviceDocsys "docvault/internal/service/docsystem"
	"docvault/internal/service/docsystem/extractor"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"max_upload_bytes", cfg.MaxUploadBytes,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create the in-memory store and repositories
	store := memory.NewStore(logger)
	docRepo := memory.NewDocumentRepository(store)
	folderRepo := memory.NewFolderRepository(store)
	tagRepo := memory.NewTagRepository(store)
	userRepo := memory.NewUserRepository(store)
	blobRepo := memory.NewBlobRepository(store)
	txManager := memory.NewTransactionManager(store)

	// Seed the fixed user set and the starter tags
	seedFile, err := seed.Load(cfg.SeedFile)
	if err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}
	if err := seed.NewSeeder(userRepo, tagRepo, logger).Seed(ctx, seedFile); err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}

	// Create document services
	validator := serviceDocsys.NewResourceValidator(folderRepo, tagRepo, userRepo)
	extractors := extractor.NewRegistry()
	docService := serviceDocsys.NewDocumentService(docRepo, blobRepo, txManager, extractors, validator, logger)
	folderService := serviceDocsys.NewFolderService(folderRepo, docRepo, txManager, validator, logger)
	tagService := serviceDocsys.NewTagService(tagRepo, docRepo, txManager, logger)
	accessService := serviceDocsys.NewAccessService(docRepo, userRepo, txManager, validator, logger)
	annotationService := serviceDocsys.NewAnnotationService(docRepo, txManager, logger)
	queryService := serviceDocsys.NewQueryService(docRepo, folderRepo, tagRepo, logger)
	treeService := serviceDocsys.NewTreeService(folderRepo, docRepo, logger)

	uploadTracker := serviceDocsys.NewUploadTracker(serviceDocsys.UploadConfig{
		MaxBytes:   cfg.MaxUploadBytes,
		ChunkBytes: cfg.UploadChunkBytes,
		Retention:  cfg.UploadRetention,
	}, logger)
	go uploadTracker.Run(ctx)

	authorizer := auth.NewPermissionAuthorizer(docRepo, queryService)

	// Create handlers
	handlers := &handler.Handlers{
		Documents:   handler.NewDocumentHandler(docService, queryService, uploadTracker, authorizer, cfg.MaxUploadBytes, logger),
		Folders:     handler.NewFolderHandler(folderService, queryService, logger),
		Tree:        handler.NewTreeHandler(treeService, logger),
		Tags:        handler.NewTagHandler(tagService, logger),
		Access:      handler.NewAccessHandler(accessService, queryService, authorizer, logger),
		Annotations: handler.NewAnnotationHandler(annotationService, authorizer, logger),
		Uploads:     handler.NewUploadHandler(uploadTracker, sse.DefaultConfig(), logger),
	}

	logger.Info("services initialized")

	// Create HTTP router
	mux := http.NewServeMux()
	handlers.Register(mux)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Request log → Identity → Routes
	h = middleware.Identity(cfg.DefaultUserID)(h)
	h = middleware.RequestLog(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - outermost so OPTIONS pre-flight requests are answered first
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", middleware.UserIDHeader, "Last-Event-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  5 * time.Minute, // Large multipart uploads
		WriteTimeout: 0,               // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
