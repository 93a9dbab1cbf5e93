// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package ranking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engine-owned metrics. Provider, API, and cache metrics live in
// internal/metrics; these cover only what the pipeline itself observes.
var (
	rankingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_requests_total",
			Help: "Total ranking requests by outcome",
		},
		[]string{"outcome"}, // "ok", "invalid_filter", "mandatory_unavailable", "canceled"
	)

	rankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ranking_request_duration_seconds",
			Help:    "End-to-end duration of ranking requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	rankingProductsRanked = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ranking_products_ranked",
			Help:    "Number of products surviving the hard filter per request",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000, 10000},
		},
	)

	// Unresolved seller references are silently skipped per the engine
	// contract; this counter is the data-integrity alert channel.
	rankingUnresolvedSellerRefs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ranking_unresolved_seller_refs_total",
			Help: "Products skipped because their seller record could not be resolved",
		},
	)

	rankingDegradedFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_degraded_fetches_total",
			Help: "Optional provider fetches that failed and degraded to a neutral default",
		},
		[]string{"provider"}, // "promotions", "overrides", "moderation", "interactions"
	)
)
