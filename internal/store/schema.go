// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

// Versioned schema migrations for the ranking read model. Applied
// migrations are tracked in schema_migrations so each runs exactly once;
// the list is append-only.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Migration is one versioned schema change.
type Migration struct {
	Version     int
	Name        string
	Description string
	SQL         string
}

const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

const initialSchema = `
CREATE TABLE IF NOT EXISTS sellers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	location TEXT,
	verification TEXT NOT NULL DEFAULT 'unverified',
	suspended BOOLEAN NOT NULL DEFAULT FALSE,
	suspension_reason TEXT,
	active_plan_id TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	seller_id TEXT NOT NULL REFERENCES sellers(id),
	name TEXT NOT NULL,
	slug TEXT NOT NULL,
	category TEXT NOT NULL,
	rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_count INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_products_category ON products (category);
CREATE INDEX IF NOT EXISTS idx_products_seller ON products (seller_id);

CREATE TABLE IF NOT EXISTS marketing_plans (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	capabilities TEXT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS ad_slot_overrides (
	slot_id TEXT PRIMARY KEY,
	entity_type TEXT NOT NULL,
	pinned_entity_id TEXT,
	expires_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS moderation_flags (
	product_id TEXT PRIMARY KEY REFERENCES products(id),
	demoted BOOLEAN NOT NULL DEFAULT FALSE,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS moderation_reports (
	id BIGSERIAL PRIMARY KEY,
	product_id TEXT NOT NULL REFERENCES products(id),
	reason TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	resolved_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_reports_open
	ON moderation_reports (product_id) WHERE resolved_at IS NULL;

CREATE TABLE IF NOT EXISTS seller_follows (
	user_id TEXT NOT NULL,
	seller_id TEXT NOT NULL REFERENCES sellers(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, seller_id)
);

CREATE TABLE IF NOT EXISTS wishlist_items (
	user_id TEXT NOT NULL,
	product_id TEXT NOT NULL REFERENCES products(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, product_id)
);`

// migrations returns all versioned migrations in order. Append-only once
// any deployment has applied a version.
func migrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Name:        "initial_read_model",
			Description: "Products, sellers, marketing plans, slots, moderation, interactions",
			SQL:         initialSchema,
		},
	}
}

// Migrate applies all pending migrations. Safe to call on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	log := componentLogger()
	for _, m := range migrations() {
		if _, ok := applied[m.Version]; ok {
			continue
		}

		start := time.Now()
		if err := applyMigration(ctx, db, m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}

		log.Info().
			Int("version", m.Version).
			Str("name", m.Name).
			Dur("duration", time.Since(start)).
			Msg("Migration applied")
	}

	return nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]struct{}, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer closeRows(rows)

	applied := make(map[int]struct{})
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[v] = struct{}{}
	}
	return applied, rows.Err()
}

// applyMigration runs one migration and records it in the same transaction,
// so a crash mid-migration never leaves a half-recorded state.
func applyMigration(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, description) VALUES ($1, $2, $3)`,
		m.Version, m.Name, m.Description); err != nil {
		return err
	}

	return tx.Commit()
}
