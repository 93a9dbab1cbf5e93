// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

// Package ranking implements the product discovery and ranking engine.
//
// # Architecture
//
// The engine assembles a per-request snapshot from five read-only data
// providers (catalog, seller directory, promotions, moderation, user
// interactions) and runs a filter-then-score-then-sort pipeline:
//
//   - Ingestion: provider fetches fan out concurrently, each with its own
//     deadline. Catalog and seller directory are mandatory; everything else
//     degrades to a documented neutral value on failure.
//   - Hard filtering: products whose seller is suspended or unresolved are
//     excluded before any scoring. No score can rescue a filtered product.
//   - Scoring: an additive, commutative combination of placement, quality,
//     personalization, and moderation factors. Every factor's contribution
//     is recorded by name for diagnostics.
//   - Sorting: stable descending by score, ascending product ID on ties.
//
// # Design Principles
//
//   - Deterministic: identical provider snapshots and identical requests
//     produce byte-identical orderings
//   - Stateless: no state is retained between calls; the engine holds no
//     caches that could serve stale suspension data
//   - Batched: sellers, marketing plans, and moderation flags are prefetched
//     with one multi-get each before the scoring loop begins
//   - Observable: degraded fetches and unresolved seller references are
//     counted, all provider calls are timed
//
// # Usage
//
//	eng, err := ranking.NewEngine(providers, ranking.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	ranked, err := eng.RankProducts(ctx, ranking.Request{UserID: uid})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Each call owns its own snapshot;
// there is no shared mutable state and no locking.
package ranking
