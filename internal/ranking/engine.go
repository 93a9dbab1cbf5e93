// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package ranking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Engine orchestrates the filter-then-score-then-sort ranking pipeline over
// the five data providers. It retains no state between calls and is safe
// for concurrent use.
type Engine struct {
	providers Providers
	config    *Config
	logger    zerolog.Logger

	// degradeMu guards snapshot degradation bookkeeping within a call's
	// fan-out phase.
	degradeMu sync.Mutex
}

// NewEngine creates a ranking engine over the given providers.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(providers Providers, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch {
	case providers.Catalog == nil:
		return nil, errors.New("catalog provider is required")
	case providers.Sellers == nil:
		return nil, errors.New("seller directory is required")
	case providers.Promotions == nil:
		return nil, errors.New("promotion provider is required")
	case providers.Moderation == nil:
		return nil, errors.New("moderation provider is required")
	case providers.Interactions == nil:
		return nil, errors.New("interaction provider is required")
	}

	return &Engine{
		providers: providers,
		config:    cfg,
		logger:    logger.With().Str("component", "ranking").Logger(),
	}, nil
}

// RankProducts computes the ordered, scored product list for one request.
//
// The result is deterministic for a given provider snapshot: the sort is
// stable descending by score with ascending product ID breaking exact ties,
// so two calls over identical data yield byte-identical orderings.
func (e *Engine) RankProducts(ctx context.Context, req Request) ([]RankedProduct, error) {
	start := time.Now()
	req = e.prepareRequest(req)
	logger := e.requestLogger(req)

	if err := req.Filter.Validate(); err != nil {
		rankingRequests.WithLabelValues("invalid_filter").Inc()
		return nil, err
	}

	snap, err := e.buildSnapshot(ctx, req, logger)
	if err != nil {
		return nil, e.classifyFailure(err, logger)
	}

	ranked := e.rankSnapshot(snap, logger)

	if len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}

	rankingRequests.WithLabelValues("ok").Inc()
	rankingDuration.Observe(time.Since(start).Seconds())

	logger.Debug().
		Int("corpus", len(snap.products)).
		Int("returned", len(ranked)).
		Strs("degraded", snap.degraded).
		Dur("elapsed", time.Since(start)).
		Msg("ranking complete")

	return ranked, nil
}

// prepareRequest applies limit defaults and assigns a request ID.
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.Limit <= 0 {
		req.Limit = e.config.DefaultLimit
	}
	if req.Limit > e.config.MaxLimit {
		req.Limit = e.config.MaxLimit
	}
	return req
}

// requestLogger returns a logger carrying the request's correlation fields.
func (e *Engine) requestLogger(req Request) zerolog.Logger {
	ctxLogger := e.logger.With().Str("request_id", req.RequestID)
	if req.UserID != "" {
		ctxLogger = ctxLogger.Str("user_id", req.UserID)
	}
	return ctxLogger.Logger()
}

// rankSnapshot runs hard filtering, scoring, and the deterministic sort
// over an assembled snapshot.
func (e *Engine) rankSnapshot(snap *snapshot, logger zerolog.Logger) []RankedProduct {
	sc := e.newScoreContext(snap)
	ranked := make([]RankedProduct, 0, len(snap.products))

	for i := range snap.products {
		p := snap.products[i]

		seller, ok := snap.sellers[p.SellerID]
		if !ok {
			// Fail safe: an unresolvable seller reference is treated as a
			// suspension. The product is skipped, not the request.
			rankingUnresolvedSellerRefs.Inc()
			logger.Warn().
				Str("product_id", p.ID).
				Str("seller_id", p.SellerID).
				Msg("seller record not found, skipping product")
			continue
		}
		if seller.Suspended {
			continue
		}

		ranked = append(ranked, sc.scoreProduct(p, seller))
	}

	rankingProductsRanked.Observe(float64(len(ranked)))

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})

	return ranked
}

// classifyFailure maps a snapshot failure to its taxonomy bucket and
// records the outcome metric.
//
// Mandatory-provider failures are checked first: a mandatory fetch that
// hits its per-provider timeout also unwraps to context.DeadlineExceeded,
// and it belongs under mandatory_unavailable, not canceled.
func (e *Engine) classifyFailure(err error, logger zerolog.Logger) error {
	switch {
	case errors.Is(err, ErrMandatoryDataUnavailable):
		rankingRequests.WithLabelValues("mandatory_unavailable").Inc()
		logger.Error().Err(err).Msg("mandatory provider unavailable, aborting ranking")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		rankingRequests.WithLabelValues("canceled").Inc()
	default:
		rankingRequests.WithLabelValues("error").Inc()
		logger.Error().Err(err).Msg("ranking failed")
	}
	return err
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}
