// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

// Package store implements the ranking engine's data providers on top of
// the Postgres read model using lib/pq.
//
// Each provider is a thin struct over a shared *sql.DB. Batched lookups use
// `= ANY($1)` with pq.Array so a ranking call issues one query per provider
// regardless of corpus size. All queries order by primary key where ordering
// is observable, keeping provider output deterministic.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
	"github.com/rs/zerolog"

	"github.com/kestrelworks/tradrank/internal/config"
	"github.com/kestrelworks/tradrank/internal/logging"
	"github.com/kestrelworks/tradrank/internal/metrics"
)

// Open connects to Postgres, applies pool settings, and verifies the
// connection with a ping.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger := logging.WithComponent("store")
	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Name).
		Int("max_open_conns", cfg.MaxOpenConns).
		Msg("Connected to postgres read model")

	return db, nil
}

// componentLogger returns the store's shared component logger.
func componentLogger() zerolog.Logger {
	return logging.WithComponent("store")
}

// observe records query duration and errors for a provider operation.
func observe(provider, operation string, start time.Time, err error) {
	metrics.RecordProviderFetch(provider, operation, time.Since(start), err)
}

// closeRows closes a result set, logging close failures at debug level
// since the scan error (if any) is already propagated.
func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logger := componentLogger()
		logger.Debug().Err(err).Msg("Failed to close rows")
	}
}
