// Package main is the entry point for the jokeboard API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"jokeboard/src/app/server"
	"jokeboard/src/infra/config"
	"jokeboard/src/infra/db"
	"jokeboard/src/infra/logger"
	"jokeboard/src/infra/repo"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; real deployments set env vars directly
	_ = godotenv.Load()

	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
	)

	ctx := context.Background()

	// Apply schema migrations before opening the pool
	if err := db.Migrate(ctx, cfg.Database, log); err != nil {
		return err
	}

	// Initialize database connection
	pg, err := db.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pg.Close()

	// Initialize repositories
	store := repo.NewPostgresRepository(pg, log)

	// Create and run HTTP server
	srv := server.New(cfg, log, store)

	// Run blocks until shutdown signal is received
	return srv.Run()
}
