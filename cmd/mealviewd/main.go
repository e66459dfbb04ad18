package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mealview/config"
	"mealview/internal/api"
	"mealview/internal/db"
	"mealview/internal/journal"
	"mealview/internal/mealdb"
	"mealview/internal/session"
	"mealview/internal/store"
	"mealview/internal/viewer"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "mealview ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Diagnostics store is optional; without it fetch cycles are only logged.
	var appStore store.Store
	if cfg.Database.Enabled {
		gormDB, err := db.Init(&cfg.Database)
		if err != nil {
			logger.Fatalf("failed to initialize database: %v", err)
		}
		appStore = store.NewGormStore(gormDB)
		logger.Println("diagnostics store initialized")
	} else {
		logger.Println("diagnostics database disabled")
	}

	journalPool := journal.NewWorkerPool(cfg.WorkerPool.Size, cfg.WorkerPool.Buffer, appStore)
	journalPool.Start(ctx)

	client := mealdb.NewClient(&cfg.MealDB)
	registry := session.NewRegistry(cfg.Session.TTL, func(sessionID string) *viewer.Viewer {
		return viewer.New(client, viewer.WithObserver(journalPool.Observer(sessionID)))
	})

	router := api.NewRouter(cfg, registry, appStore)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutMs)*time.Millisecond)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Printf("HTTP server Shutdown: %v", err)
	}

	// Tear down viewers so in-flight fetches are cancelled and discarded.
	registry.CloseAll()
	logger.Println("Server gracefully stopped")
}
