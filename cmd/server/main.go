package main

import (
	"alcyxob/coachy/internal/api"
	"alcyxob/coachy/internal/config"
	"alcyxob/coachy/internal/platform/logger"
	"alcyxob/coachy/internal/repository"
	"alcyxob/coachy/internal/repository/memory"
	"alcyxob/coachy/internal/repository/mongo"
	"alcyxob/coachy/internal/service"
	"alcyxob/coachy/internal/storage"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Coachy API
// @version 1.0
// @description Exercise catalog, filtering, session and settings API.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Redact)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Starting Coachy server", "backend", cfg.Catalog.Backend, "address", cfg.Server.Address)

	// --- Repositories ---
	repos, cleanup, err := buildRepositories(cfg, log)
	if err != nil {
		log.Fatal("Could not initialize repositories", "error", err)
	}
	defer cleanup()

	// --- Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3, log)
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", "error", err)
		}
	} else {
		log.Warn("S3 bucket not configured; exercise media disabled")
	}

	// --- Services ---
	services := api.Services{
		Auth:     service.NewAuthService(repos.users, repos.preferences, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.GuestExpiration, log),
		Exercise: service.NewExerciseService(repos.exercises, log),
		Media:    service.NewMediaService(repos.exercises, fileStorage, log),
		Settings: service.NewSettingsService(repos.preferences),
	}

	// --- Gin Engine ---
	if cfg.Log.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(log))
	api.SetupRoutes(router, services, log)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe error", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	log.Info("Server exiting")
}

type repositories struct {
	users       repository.UserRepository
	exercises   repository.ExerciseRepository
	preferences repository.KeyValueStore
}

func buildRepositories(cfg config.Config, log *logger.Logger) (repositories, func(), error) {
	if cfg.Catalog.Backend == config.BackendMemory {
		return repositories{
			users:       memory.NewUserRepository(),
			exercises:   memory.NewExerciseRepository(memory.WithLatency(cfg.Catalog.ListLatency, cfg.Catalog.GetLatency)),
			preferences: memory.NewKeyValueStore(),
		}, func() {}, nil
	}

	client, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("connect mongo: %w", err)
	}
	cleanup := func() {
		if err := mongo.DisconnectDB(client); err != nil {
			log.Error("Failed to disconnect MongoDB", "error", err)
		}
	}
	db := client.Database(cfg.Database.Name)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		cleanup()
		return repositories{}, nil, fmt.Errorf("ensure indexes: %w", err)
	}
	if cfg.Catalog.Seed {
		n, err := mongo.SeedExercises(ctx, db, memory.MockExercises())
		if err != nil {
			cleanup()
			return repositories{}, nil, fmt.Errorf("seed exercises: %w", err)
		}
		if n > 0 {
			log.Info("Seeded exercise catalog", "count", n)
		}
	}

	return repositories{
		users:       mongo.NewMongoUserRepository(db),
		exercises:   mongo.NewMongoExerciseRepository(db),
		preferences: mongo.NewMongoPreferenceStore(db),
	}, cleanup, nil
}
