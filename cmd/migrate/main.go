package main

import (
	"context"                  // Seed context
	"game_api/internal/config" // Custom import path (Config)
	"game_api/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging
)

// Main entry point for migration
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	if cfg.SeedData {
		if err := db.Seed(context.Background(), gdb); err != nil {
			logrus.Fatalf("seeding failed: %v", err)
		}
	}
}
