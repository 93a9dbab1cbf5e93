// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

// Package cache provides a Redis read-through cache for promotion data.
//
// Marketing plans and ad-slot overrides change on admin/billing timescales
// (minutes) while rankings are computed per request, so short TTLs shed most
// of the promotion query load without observable staleness. Cache failures
// are never fatal: every error falls through to the inner provider, counted
// in cache_errors_total.
//
// Mandatory data (catalog, sellers) is deliberately not cached: suspension
// state must be read fresh on every ranking call.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/kestrelworks/tradrank/internal/logging"
	"github.com/kestrelworks/tradrank/internal/metrics"
	"github.com/kestrelworks/tradrank/internal/ranking"
)

const (
	planKeyPrefix = "tradrank:plans:"
	slotsKey      = "tradrank:adslots"

	planCacheType = "plans"
	slotCacheType = "ad_slots"
)

// PromotionCache is a read-through decorator over a PromotionProvider.
type PromotionCache struct {
	inner   ranking.PromotionProvider
	client  *redis.Client
	planTTL time.Duration
	slotTTL time.Duration
}

// NewPromotionCache wraps inner with Redis caching.
func NewPromotionCache(inner ranking.PromotionProvider, client *redis.Client, planTTL, slotTTL time.Duration) *PromotionCache {
	return &PromotionCache{
		inner:   inner,
		client:  client,
		planTTL: planTTL,
		slotTTL: slotTTL,
	}
}

// ActivePlan returns the seller's active plan, serving from cache when the
// batched entry for this seller is already present.
func (c *PromotionCache) ActivePlan(ctx context.Context, sellerID string) (*ranking.MarketingPlan, error) {
	plans, err := c.ActivePlansBySellerIDs(ctx, []string{sellerID})
	if err != nil {
		return nil, err
	}
	if plan, ok := plans[sellerID]; ok {
		return &plan, nil
	}
	return nil, nil
}

// ActivePlansBySellerIDs returns active plans for the given sellers. The
// batch is cached as one entry keyed by the sorted ID set, matching the
// engine's per-request access pattern.
func (c *PromotionCache) ActivePlansBySellerIDs(ctx context.Context, sellerIDs []string) (map[string]ranking.MarketingPlan, error) {
	if len(sellerIDs) == 0 {
		return map[string]ranking.MarketingPlan{}, nil
	}

	key := planBatchKey(sellerIDs)

	var cached map[string]ranking.MarketingPlan
	if c.get(ctx, key, planCacheType, &cached) {
		return cached, nil
	}

	plans, err := c.inner.ActivePlansBySellerIDs(ctx, sellerIDs)
	if err != nil {
		return nil, err
	}

	c.set(ctx, key, planCacheType, plans, c.planTTL)
	return plans, nil
}

// AdSlotOverrides returns all configured slot overrides, cached under a
// single key since the engine always reads the full set.
func (c *PromotionCache) AdSlotOverrides(ctx context.Context) ([]ranking.AdSlotOverride, error) {
	var cached []ranking.AdSlotOverride
	if c.get(ctx, slotsKey, slotCacheType, &cached) {
		return cached, nil
	}

	overrides, err := c.inner.AdSlotOverrides(ctx)
	if err != nil {
		return nil, err
	}

	c.set(ctx, slotsKey, slotCacheType, overrides, c.slotTTL)
	return overrides, nil
}

// get loads and decodes a cached value. Returns false on miss or on any
// cache failure, in which case the caller falls through to the source.
func (c *PromotionCache) get(ctx context.Context, key, cacheType string, dest interface{}) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(cacheType)
		} else {
			metrics.RecordCacheError(cacheType)
			logger := logging.WithComponent("cache")
			logger.Warn().Err(err).Str("key", key).Msg("Cache read failed, falling through")
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		metrics.RecordCacheError(cacheType)
		logger := logging.WithComponent("cache")
		logger.Warn().Err(err).Str("key", key).Msg("Cache entry corrupt, falling through")
		return false
	}

	metrics.RecordCacheHit(cacheType)
	return true
}

// set stores a value with TTL. Write failures are logged and counted but
// never propagated; the caller already has the fresh value.
func (c *PromotionCache) set(ctx context.Context, key, cacheType string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		metrics.RecordCacheError(cacheType)
		logger := logging.WithComponent("cache")
		logger.Warn().Err(err).Str("key", key).Msg("Cache encode failed")
		return
	}

	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		metrics.RecordCacheError(cacheType)
		logger := logging.WithComponent("cache")
		logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// planBatchKey builds a deterministic cache key for a seller ID batch.
// IDs are sorted so request-order differences hit the same entry.
func planBatchKey(sellerIDs []string) string {
	sorted := make([]string, len(sellerIDs))
	copy(sorted, sellerIDs)
	sort.Strings(sorted)
	return fmt.Sprintf("%s%s", planKeyPrefix, strings.Join(sorted, ","))
}
