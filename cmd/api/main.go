package main

import (
	"log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/macrochef/backend/config"
	"github.com/macrochef/backend/internal/api"
	"github.com/macrochef/backend/internal/database"
	"github.com/macrochef/backend/internal/router"
	"github.com/macrochef/backend/internal/server"
	"github.com/macrochef/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	var cache *redis.Client
	if cfg.CacheEnabled {
		cache, err = database.NewRedisClient(cfg, logger)
		if err != nil {
			logger.Warn("macro lookup cache disabled", zap.Error(err))
			cache = nil
		}
	}

	llmService, err := service.NewLLMService(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize model client", zap.Error(err))
	}
	nutritionService := service.NewNutritionService(cfg, cache, logger)
	macroService := service.NewMacroService(nutritionService, cfg.LookupWorkers)
	recipeService := service.NewRecipeService(db)
	historyService := service.NewHistoryService(db)
	generator := service.NewGeneratorService(llmService, macroService, recipeService, historyService, logger)

	engine := router.SetupRouter(
		api.NewHealthHandler(db),
		api.NewGenerateHandler(generator),
		api.NewRecipeHandler(recipeService, historyService),
		logger,
	)

	srv := server.NewServer(cfg, engine, logger)
	if err := srv.Run(); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	parsed, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = parsed
	return zapCfg.Build()
}
