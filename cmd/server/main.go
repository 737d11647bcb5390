package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"jobtracker/internal/config"
	"jobtracker/internal/db"
	"jobtracker/internal/jobs"
	"jobtracker/internal/metrics"
	"jobtracker/internal/server"
	"jobtracker/internal/validation"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Local development convenience; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg := config.Load()

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load YAML config: %v", err)
	}

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	if err := database.CheckSchema(ctx); err != nil {
		log.Fatalf("Database health check failed: %v", err)
	}
	log.Println("Database health check passed")

	if cfg.SeedDevData && !cfg.IsDev() {
		log.Printf("SEED_DEV_DATA ignored outside development (ENV=%s)", cfg.Env)
	} else if cfg.SeedDevData {
		seed, err := yamlCfg.SeedApplications()
		if err != nil {
			log.Fatalf("Invalid seed data: %v", err)
		}
		if err := database.SeedDevApplications(ctx, seed); err != nil {
			log.Printf("Warning: failed to seed development data: %v", err)
		}
	}

	metrics.Init(database)

	// Background database monitor
	monitor := jobs.NewDBMonitor(database, cfg.DBCheckInterval)
	go monitor.Start(ctx)

	srv := server.New(cfg)
	srv.RegisterRoutes(database, validation.NewValidator(yamlCfg.StatusCatalog()))

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
