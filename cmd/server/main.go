// Package main is the entry point for the negocio API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"negocio/internal/blobstore"
	"negocio/internal/docstore"
	"negocio/internal/docstore/memory"
	"negocio/internal/docstore/postgres"
	"negocio/internal/domain/auth"
	v1 "negocio/internal/infrastructure/http/v1"
	"negocio/internal/infrastructure/http/v1/handlers"
	"negocio/pkg/logger"
)

const version = "1.0.0"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting negocio server")

	// --- Document store ---
	var store docstore.Store
	var pinger handlers.Pinger

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
		if err != nil {
			log.Fatalw("failed to connect to database", "error", err)
		}
		defer pool.Close()

		pgStore := postgres.New(pool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			log.Fatalw("failed to ensure schema", "error", err)
		}
		store = pgStore
		pinger = pool
		log.Info("database connection established")
	} else {
		// In-memory store for local development without Postgres.
		store = memory.New()
		log.Warn("DATABASE_URL not set, using in-memory store")
	}

	// --- Object store ---
	blobDir := getEnv("BLOB_DIR", "./data/blobs")
	blobBaseURL := getEnv("BLOB_BASE_URL", "/files")
	blobs, err := blobstore.NewDiskStore(blobDir, blobBaseURL)
	if err != nil {
		log.Fatalw("failed to initialize blob store", "dir", blobDir, "error", err)
	}

	// --- Auth ---
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))
	authService := auth.NewService(store, jwtService)

	// --- Router ---
	router, err := v1.NewRouter(v1.RouterConfig{
		Store:          store,
		Blobs:          blobs,
		Pinger:         pinger,
		Logger:         log,
		AuthService:    authService,
		StockAlertRule: os.Getenv("STOCK_ALERT_RULE"),
		Letterhead: v1.Letterhead{
			Name:    getEnv("BUSINESS_NAME", "Mi Negocio"),
			Address: getEnv("BUSINESS_ADDRESS", ""),
			Phone:   getEnv("BUSINESS_PHONE", ""),
		},
		Version: version,
	})
	if err != nil {
		log.Fatalw("failed to build router", "error", err)
	}

	// Serve uploaded files next to the API.
	router.Static(blobBaseURL, blobDir)

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
