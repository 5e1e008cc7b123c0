package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/MelodyQuest_Go/internal/bootstrap"
	"github.com/osse101/MelodyQuest_Go/internal/config"
	"github.com/osse101/MelodyQuest_Go/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch cfg.StorageDriver {
	case storage.DriverPostgres:
		if err := ensureDatabase(ctx, cfg); err != nil {
			log.Fatalf("Failed to prepare database: %v", err)
		}
	case storage.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	default:
		fmt.Printf("Storage driver %q needs no setup.\n", cfg.StorageDriver)
		return
	}

	// Opening the store applies pending migrations
	store, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	if _, err := bootstrap.LoadExperience(cfg); err != nil {
		log.Fatalf("Experience file is invalid: %v", err)
	}

	fmt.Println("Setup completed successfully.")
}

// ensureDatabase creates DB_NAME on the server when it does not exist
func ensureDatabase(ctx context.Context, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, cfg.GetServerConnString())
	if err != nil {
		return fmt.Errorf("connect to postgres server: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database: %w", err)
	}
	if exists {
		fmt.Printf("Database %s already exists.\n", cfg.DBName)
		return nil
	}

	fmt.Printf("Creating database %s...\n", cfg.DBName)
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	fmt.Println("Database created successfully.")
	return nil
}
