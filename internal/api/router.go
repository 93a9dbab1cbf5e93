// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

// Package api provides HTTP routing and handlers for the ranking service
// using the Chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kestrelworks/tradrank/internal/config"
)

// Router assembles the HTTP surface.
type Router struct {
	handlers *Handlers
	cfg      config.APIConfig
}

// NewRouter creates a router over the given handlers.
func NewRouter(handlers *Handlers, cfg config.APIConfig) *Router {
	return &Router{handlers: handlers, cfg: cfg}
}

// Setup configures all HTTP routes.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS(rt.cfg.CORSOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(RequestLogger())

	if rt.cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(rt.cfg.RequestTimeout))
	}

	// Health endpoints: no rate limiting so probes never get throttled.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", rt.handlers.HealthLive)
		r.Get("/ready", rt.handlers.HealthReady)
	})

	// Ranking endpoints.
	r.Route("/api/v1/rankings", func(r chi.Router) {
		r.Use(RateLimit(rt.cfg))
		r.Use(PrometheusMetrics())

		r.Get("/", rt.handlers.Rankings)
		r.Get("/slots", rt.handlers.Slots)
	})

	// Prometheus exposition.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
