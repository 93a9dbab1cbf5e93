// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

// Package main is the entry point for the TradRank ranking service.
//
// TradRank computes marketplace product rankings from a Postgres read model:
// catalog listings are filtered for suspended sellers, scored against
// marketing plans, moderation signals, and buyer interactions, then returned
// in a deterministic order over a REST API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered sources (defaults, YAML file, env)
//  2. Logging: zerolog with configured level and format
//  3. Postgres: read model connection pool (lib/pq)
//  4. Providers: store-backed providers, circuit breakers on optional data,
//     optional Redis read-through cache for promotion data
//  5. Ranking engine: filter, score, sort pipeline
//  6. HTTP server: Chi router under Suture supervision
//
// # Configuration
//
// Precedence (highest wins): environment variables, config file
// (CONFIG_PATH or ./config.yaml), built-in defaults.
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server stops
// accepting connections, in-flight requests get the configured shutdown
// timeout, then the database and Redis connections close.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kestrelworks/tradrank/internal/api"
	"github.com/kestrelworks/tradrank/internal/cache"
	"github.com/kestrelworks/tradrank/internal/config"
	"github.com/kestrelworks/tradrank/internal/logging"
	"github.com/kestrelworks/tradrank/internal/metrics"
	"github.com/kestrelworks/tradrank/internal/ranking"
	"github.com/kestrelworks/tradrank/internal/store"
	"github.com/kestrelworks/tradrank/internal/supervisor"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Fields(cfg.LogSummary()).Msg("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics.SetAppInfo(version)
	go metrics.TrackUptime(ctx, time.Now())

	// Postgres read model. Mandatory: rankings cannot be computed without it.
	db, err := store.Open(ctx, cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to Postgres read model")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if err := store.Migrate(ctx, db); err != nil {
		logging.Fatal().Err(err).Msg("Failed to apply schema migrations")
	}

	// Optional Redis cache for promotion data.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logging.Warn().Err(err).Str("addr", cfg.Redis.Addr).
				Msg("Redis unreachable at startup, cache will degrade to direct reads")
		} else {
			logging.Info().Str("addr", cfg.Redis.Addr).Msg("Redis cache connected")
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing Redis client")
			}
		}()
	}

	// Providers. Catalog and sellers are mandatory and surface real errors;
	// promotions, moderation, and interactions degrade, so they sit behind
	// circuit breakers (and promotions optionally behind Redis).
	var promotions ranking.PromotionProvider = store.NewPromotionStore(db)
	if redisClient != nil {
		promotions = cache.NewPromotionCache(promotions, redisClient, cfg.Redis.PlanTTL, cfg.Redis.SlotTTL)
	}
	promotions = store.NewBreakerPromotions(promotions)
	moderation := store.NewBreakerModeration(store.NewModerationStore(db))
	interactions := store.NewBreakerInteractions(store.NewInteractionStore(db))

	providers := ranking.Providers{
		Catalog:      store.NewCatalogStore(db),
		Sellers:      store.NewSellerStore(db),
		Promotions:   promotions,
		Moderation:   moderation,
		Interactions: interactions,
	}

	engine, err := ranking.NewEngine(providers, &cfg.Ranking, logging.WithComponent("ranking"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create ranking engine")
	}

	handlers := api.NewHandlers(engine, providers.Promotions, db)
	router := api.NewRouter(handlers, cfg.API)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Supervisor tree; sutureslog needs an slog logger, bridged from zerolog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	tree.AddAPIService(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	if path := config.ActiveConfigFile(); path != "" {
		tree.AddBackgroundService(supervisor.NewConfigWatchService(path, func() {
			// Weight changes require a restart; the watcher only surfaces them.
			logging.Info().Str("path", path).
				Msg("Config file changed, restart to apply")
		}))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor closes the channel.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
