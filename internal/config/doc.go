// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

/*
Package config provides layered configuration management for the ranking
service using Koanf v2.

# Loading

Configuration is assembled from three layers, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML config file (CONFIG_PATH, then DefaultConfigPaths)
 3. Environment variables (POSTGRES_HOST, HTTP_PORT, RANKING_MAX_LIMIT, ...)

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("failed to load config")
	}

# Sections

  - Server: HTTP listen address and timeouts
  - Database: Postgres read model connection and pool settings
  - Redis: optional read-through cache for promotion data
  - Ranking: scoring weights, provider timeouts, and result limits
  - API: rate limiting and CORS
  - Logging: level and format

The Ranking section embeds the ranking package's own Config so weight and
timeout overrides flow straight into the engine without translation.

# Validation

Load() validates the assembled configuration and refuses to start on
malformed values. LogSummary() renders a startup summary with all secrets
masked.
*/
package config
