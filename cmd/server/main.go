package main

import (
	"log"

	"github.com/kamyarmaaf/plan1/internal"
	"github.com/kamyarmaaf/plan1/internal/api"
	"github.com/kamyarmaaf/plan1/internal/auth"
	"github.com/kamyarmaaf/plan1/internal/config"
	"github.com/kamyarmaaf/plan1/internal/llm"
	"github.com/kamyarmaaf/plan1/internal/planner"
	"github.com/kamyarmaaf/plan1/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	repos, err := storage.NewRepositories(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer repos.Closer.Close()

	var provider auth.Provider
	if cfg.AuthMode == "jwt" {
		provider = auth.NewJWTProvider(cfg.JWTSecret, logger)
	} else {
		provider = auth.NewLocalProvider(cfg.AuthToken, logger)
	}

	backends := llm.NewBackends(cfg.LLMBackends)
	if len(backends) == 0 {
		logger.Warn("no generation backends configured, all plans will use the deterministic fallback")
	}
	generator := planner.NewGenerator(backends, repos.Plans, logger)

	app := api.NewApp(logger, repos, generator, cfg.DefaultTZ)
	router := api.NewRouter(app, provider)

	logger.Infof("server running on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
