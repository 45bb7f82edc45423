// Package main is the entry point for the TherapyCMS API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"therapycms/internal/audit"
	"therapycms/internal/cache"
	"therapycms/internal/config"
	"therapycms/internal/database"
	"therapycms/internal/handlers"
	"therapycms/internal/models"
	"therapycms/internal/router"
	"therapycms/internal/session"
	"therapycms/internal/storage"
	"therapycms/internal/store"
)

func main() {
	// Load a local .env file when present; real environments set variables
	// directly and the file is absent.
	_ = godotenv.Load()

	// Structured logger — text output, debug level.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible session store + response cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize session store backed by Valkey.
	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Connect to S3-compatible object storage (optional — app works without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, media uploads disabled")
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	contentStore := store.NewContentStore(db)
	categoryStore := store.NewCategoryStore(db)
	mediaStore := store.NewMediaStore(db)
	teamStore := store.NewTeamStore(db)
	bannerStore := store.NewBannerStore(db)
	contactStore := store.NewContactStore(db)
	auditStore := store.NewAuditStore(db)

	auditLogger := audit.NewLogger(auditStore)
	responseCache := cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)

	// Create handler groups with their dependencies.
	h := router.Handlers{
		Auth:       handlers.NewAuth(sessionStore, userStore, auditLogger),
		Posts:      handlers.NewContent(models.ContentTypePost, contentStore, auditLogger, responseCache),
		News:       handlers.NewContent(models.ContentTypeNews, contentStore, auditLogger, responseCache),
		Services:   handlers.NewContent(models.ContentTypeService, contentStore, auditLogger, responseCache),
		Categories: handlers.NewCategories(categoryStore, auditLogger, responseCache),
		Team:       handlers.NewTeam(teamStore, auditLogger, responseCache),
		Banners:    handlers.NewBanners(bannerStore, auditLogger, responseCache),
		Contact:    handlers.NewContact(contactStore, auditLogger, responseCache),
		Media:      handlers.NewMedia(mediaStore, storageClient, auditLogger),
		Users:      handlers.NewUsers(userStore, auditLogger),
		AuditLog:   handlers.NewAuditLog(auditStore),
		Public:     handlers.NewPublic(contentStore, teamStore, bannerStore, contactStore, mediaStore, storageClient, responseCache),
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, h)

	// Create the HTTP server with sensible timeouts. WriteTimeout leaves
	// room for large media uploads to S3.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
