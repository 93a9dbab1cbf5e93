// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package implements application instrumentation using the Prometheus client
library, exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Data provider fetch performance (Postgres read model)
  - Redis cache hit/miss rates
  - Circuit breaker state transitions

Ranking-engine metrics (request outcomes, pipeline duration, degraded
fetches) live in the ranking package itself, registered alongside the
engine they instrument.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total HTTP requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Provider Metrics:
  - provider_fetch_duration_seconds: Provider fetch time (histogram)
    Labels: provider, operation
  - provider_fetch_errors_total: Failed fetches (counter)
    Labels: provider, operation
  - provider_batch_size: IDs per batched lookup (histogram)
    Labels: provider

Database Metrics:
  - db_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - db_query_errors_total: Failed queries (counter)
    Labels: operation, table
  - db_connections_in_use: Active database connections (gauge)

Cache Metrics:
  - cache_hits_total, cache_misses_total, cache_errors_total (counters)
    Labels: cache_type (plans, ad_slots)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Request outcomes (counter)
    Labels: name, result
  - circuit_breaker_state_transitions_total: Transitions (counter)
    Labels: name, from_state, to_state

# Usage

Metrics are package-level and registered via promauto at init time:

	start := time.Now()
	rows, err := db.QueryContext(ctx, query)
	metrics.RecordDBQuery("select", "products", time.Since(start), err)

# Thread Safety

All Prometheus metric types are safe for concurrent use. The helper
functions in this package add no state of their own.
*/
package metrics
