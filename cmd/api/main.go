package main

import (
	"os"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/joho/godotenv"

	"github.com/tidechat/tidechat/internal/app"
	"github.com/tidechat/tidechat/internal/config"
	"github.com/tidechat/tidechat/internal/provider"
	"github.com/tidechat/tidechat/internal/relay"
	"github.com/tidechat/tidechat/internal/storage"
	"github.com/tidechat/tidechat/internal/storage/sqlite"
	"github.com/tidechat/tidechat/internal/transport/http/handler"
	"github.com/tidechat/tidechat/internal/transport/http/middleware/ratelimit"
)

// Ingress quota: 100 requests per 15 minutes per client address.
const (
	rateLimitRequests = 100
	rateLimitWindow   = 15 * time.Minute
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	_ = config.EnsureConfigFile()
	cfg := config.Load()
	logger := setupLogger(cfg.LogLevel)

	cache, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters: 1e7,
		MaxCost:     1 << 30,
		BufferItems: 64,
	})
	if err != nil {
		logger.Error("failed to initialize cache", "error", err)
		os.Exit(1)
	}

	// Usage accounting is best-effort: a broken database disables it
	// instead of blocking the relay.
	var store storage.Storage
	if err := config.EnsureDataDir(); err != nil {
		logger.Warn("usage accounting disabled", "error", err)
	} else if s, err := sqlite.New(cfg.DBPath); err != nil {
		logger.Warn("usage accounting disabled", "error", err)
	} else {
		store = s
		defer s.Close()
	}

	registry := provider.LoadProfiles(cfg)
	repo := handler.NewRepo(logger, cfg, registry, relay.New(logger), store, cache)

	router := app.NewRouter(repo, &app.RouterOptions{
		Logger:    logger,
		RateLimit: ratelimit.New(rateLimitRequests, rateLimitWindow),
	})

	printStartupBanner(cfg)

	srv := app.NewServer(cfg, router, logger)
	if err := srv.Start(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
