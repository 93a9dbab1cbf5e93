// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package store

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/kestrelworks/tradrank/internal/logging"
	"github.com/kestrelworks/tradrank/internal/metrics"
	"github.com/kestrelworks/tradrank/internal/ranking"
)

// Circuit breakers wrap the OPTIONAL providers only (promotions, moderation,
// interactions). The engine degrades those to neutral defaults on error, so
// an open breaker turns a slow struggling query into an instant degradation
// instead of a per-request timeout. Catalog and seller fetches are mandatory
// and must surface their real error, so they are never wrapped.
//
// DETERMINISM NOTE: breakers use real time (via sony/gobreaker) for their
// interval and timeout calculations. Timing controls recovery, not data
// integrity; unit tests target the unwrapped stores.

// newBreaker builds a circuit breaker with the service's standard trip
// policy: open after a 60% failure rate over at least 10 requests, allow 3
// probes in half-open, recover after 30 seconds.
func newBreaker(name string) *gobreaker.CircuitBreaker[any] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logger := logging.WithComponent("store")
				logger.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := from.String()
			toStr := to.String()

			logger := logging.WithComponent("store")
			logger.Info().
				Str("breaker", name).
				Str("from", fromStr).
				Str("to", toStr).
				Msg("Circuit breaker state transition")

			metrics.RecordCircuitBreakerTransition(name, fromStr, toStr)
		},
	})
}

// execute runs fn through cb and classifies the outcome for metrics.
func execute[T any](cb *gobreaker.CircuitBreaker[any], name string, fn func() (T, error)) (T, error) {
	result, err := cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordCircuitBreakerResult(name, "rejected")
		} else {
			metrics.RecordCircuitBreakerResult(name, "failure")
		}
		var zero T
		return zero, err
	}

	metrics.RecordCircuitBreakerResult(name, "success")
	typed, _ := result.(T)
	return typed, nil
}

// BreakerPromotions wraps a PromotionProvider with a circuit breaker.
type BreakerPromotions struct {
	inner ranking.PromotionProvider
	cb    *gobreaker.CircuitBreaker[any]
	name  string
}

// NewBreakerPromotions creates a breaker-protected promotion provider.
func NewBreakerPromotions(inner ranking.PromotionProvider) *BreakerPromotions {
	const name = "promotions"
	return &BreakerPromotions{inner: inner, cb: newBreaker(name), name: name}
}

// ActivePlan delegates through the breaker.
func (b *BreakerPromotions) ActivePlan(ctx context.Context, sellerID string) (*ranking.MarketingPlan, error) {
	return execute(b.cb, b.name, func() (*ranking.MarketingPlan, error) {
		return b.inner.ActivePlan(ctx, sellerID)
	})
}

// ActivePlansBySellerIDs delegates through the breaker.
func (b *BreakerPromotions) ActivePlansBySellerIDs(ctx context.Context, sellerIDs []string) (map[string]ranking.MarketingPlan, error) {
	return execute(b.cb, b.name, func() (map[string]ranking.MarketingPlan, error) {
		return b.inner.ActivePlansBySellerIDs(ctx, sellerIDs)
	})
}

// AdSlotOverrides delegates through the breaker.
func (b *BreakerPromotions) AdSlotOverrides(ctx context.Context) ([]ranking.AdSlotOverride, error) {
	return execute(b.cb, b.name, func() ([]ranking.AdSlotOverride, error) {
		return b.inner.AdSlotOverrides(ctx)
	})
}

// BreakerModeration wraps a ModerationProvider with a circuit breaker.
type BreakerModeration struct {
	inner ranking.ModerationProvider
	cb    *gobreaker.CircuitBreaker[any]
	name  string
}

// NewBreakerModeration creates a breaker-protected moderation provider.
func NewBreakerModeration(inner ranking.ModerationProvider) *BreakerModeration {
	const name = "moderation"
	return &BreakerModeration{inner: inner, cb: newBreaker(name), name: name}
}

// Status delegates through the breaker.
func (b *BreakerModeration) Status(ctx context.Context, productID string) (ranking.ModerationStatus, error) {
	return execute(b.cb, b.name, func() (ranking.ModerationStatus, error) {
		return b.inner.Status(ctx, productID)
	})
}

// StatusesByProductIDs delegates through the breaker.
func (b *BreakerModeration) StatusesByProductIDs(ctx context.Context, productIDs []string) (map[string]ranking.ModerationStatus, error) {
	return execute(b.cb, b.name, func() (map[string]ranking.ModerationStatus, error) {
		return b.inner.StatusesByProductIDs(ctx, productIDs)
	})
}

// UnresolvedReportCount delegates through the breaker.
func (b *BreakerModeration) UnresolvedReportCount(ctx context.Context, productID string) (int, error) {
	return execute(b.cb, b.name, func() (int, error) {
		return b.inner.UnresolvedReportCount(ctx, productID)
	})
}

// BreakerInteractions wraps an InteractionProvider with a circuit breaker.
type BreakerInteractions struct {
	inner ranking.InteractionProvider
	cb    *gobreaker.CircuitBreaker[any]
	name  string
}

// NewBreakerInteractions creates a breaker-protected interaction provider.
func NewBreakerInteractions(inner ranking.InteractionProvider) *BreakerInteractions {
	const name = "interactions"
	return &BreakerInteractions{inner: inner, cb: newBreaker(name), name: name}
}

// FollowedSellerIDs delegates through the breaker.
func (b *BreakerInteractions) FollowedSellerIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	return execute(b.cb, b.name, func() (map[string]struct{}, error) {
		return b.inner.FollowedSellerIDs(ctx, userID)
	})
}

// WishlistedProductIDs delegates through the breaker.
func (b *BreakerInteractions) WishlistedProductIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	return execute(b.cb, b.name, func() (map[string]struct{}, error) {
		return b.inner.WishlistedProductIDs(ctx, userID)
	})
}
