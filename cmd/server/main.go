package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clipstream/backend/internal/api"
	"github.com/clipstream/backend/internal/cache"
	"github.com/clipstream/backend/internal/config"
	"github.com/clipstream/backend/internal/repository/postgres"
	"github.com/clipstream/backend/internal/service"
	"github.com/clipstream/backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Like-count cache
	counts, err := cache.NewCounts(cfg.LikeCacheSize)
	if err != nil {
		log.Fatalf("failed to create count cache: %v", err)
	}

	// Media store: object storage when a bucket is configured, local
	// disk otherwise.
	var media storage.MediaStore
	if cfg.Media.Bucket != "" {
		media, err = storage.NewS3Store(context.Background(), cfg.Media)
		if err != nil {
			log.Fatalf("failed to configure object storage: %v", err)
		}
	} else {
		media, err = storage.NewLocalStore(cfg.Media.LocalDir)
		if err != nil {
			log.Fatalf("failed to configure local storage: %v", err)
		}
	}

	// Initialize services
	services := service.NewServices(repos, cfg, media, counts)

	// Initialize router
	router := api.NewRouter(services, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
