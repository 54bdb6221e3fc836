package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/macrochef/backend/config"
	"github.com/macrochef/backend/internal/database"
)

// Applies the schema migrations and exits. Useful for upgrading a database
// file without starting the API server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.Migrate(db, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	logger.Info("migrations applied", zap.String("driver", cfg.DBDriver))
}
