// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package ranking

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// snapshot is the per-request view of provider data. The engine is a pure
// function of one snapshot; nothing in it outlives the call.
type snapshot struct {
	products   []Product
	sellers    map[string]Seller          // by seller ID
	plans      map[string]MarketingPlan   // active plan by seller ID
	moderation map[string]ModerationStatus // by product ID
	overrides  []AdSlotOverride
	follows    map[string]struct{}
	wishlist   map[string]struct{}

	// degraded lists optional fetches that fell back to neutral defaults.
	degraded []string
}

// fetchResult carries one concurrent fetch's outcome back to the joiner.
type fetchResult struct {
	name string
	err  error
}

// buildSnapshot assembles the request snapshot in two concurrent phases.
//
// Phase one fans out to the fetches that need nothing but the request:
// product corpus, ad-slot overrides, and the user's interaction sets.
// Phase two batches the per-product lookups (sellers, active plans,
// moderation) by distinct ID so the scoring loop never issues a remote call.
//
// Catalog and seller directory failures abort the call. Every other failure
// degrades to the neutral default for its factor, with a warning and a
// counter increment.
func (e *Engine) buildSnapshot(ctx context.Context, req Request, logger zerolog.Logger) (*snapshot, error) {
	snap := &snapshot{
		follows:  map[string]struct{}{},
		wishlist: map[string]struct{}{},
	}

	var (
		wg         sync.WaitGroup
		catalogErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		fetchCtx, cancel := context.WithTimeout(ctx, e.config.Timeouts.Catalog)
		defer cancel()
		snap.products, catalogErr = e.providers.Catalog.Products(fetchCtx, req.Filter)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		fetchCtx, cancel := context.WithTimeout(ctx, e.config.Timeouts.Promotions)
		defer cancel()
		overrides, err := e.providers.Promotions.AdSlotOverrides(fetchCtx)
		if err != nil {
			e.degrade(snap, "overrides", err, logger)
			return
		}
		snap.overrides = overrides
	}()

	// Anonymous callers get empty interaction sets without a fetch.
	if req.UserID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, e.config.Timeouts.Interactions)
			defer cancel()
			follows, err := e.providers.Interactions.FollowedSellerIDs(fetchCtx, req.UserID)
			if err != nil {
				e.degrade(snap, "interactions", err, logger)
				return
			}
			snap.follows = follows
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, e.config.Timeouts.Interactions)
			defer cancel()
			wishlist, err := e.providers.Interactions.WishlistedProductIDs(fetchCtx, req.UserID)
			if err != nil {
				e.degrade(snap, "interactions", err, logger)
				return
			}
			snap.wishlist = wishlist
		}()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if catalogErr != nil {
		return nil, mandatoryErr("catalog", catalogErr)
	}

	if len(snap.products) == 0 {
		snap.sellers = map[string]Seller{}
		snap.plans = map[string]MarketingPlan{}
		snap.moderation = map[string]ModerationStatus{}
		return snap, nil
	}

	if err := e.prefetchByIDs(ctx, snap, logger); err != nil {
		return nil, err
	}

	return snap, nil
}

// prefetchByIDs issues the three batched multi-gets keyed by the distinct
// IDs in the corpus, concurrently. One round trip each replaces the
// per-product lookups of the original pipeline.
func (e *Engine) prefetchByIDs(ctx context.Context, snap *snapshot, logger zerolog.Logger) error {
	sellerIDs := distinctSellerIDs(snap.products)
	productIDs := make([]string, len(snap.products))
	for i := range snap.products {
		productIDs[i] = snap.products[i].ID
	}

	var (
		wg        sync.WaitGroup
		sellerErr error
	)

	snap.plans = map[string]MarketingPlan{}
	snap.moderation = map[string]ModerationStatus{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		fetchCtx, cancel := context.WithTimeout(ctx, e.config.Timeouts.Sellers)
		defer cancel()
		snap.sellers, sellerErr = e.providers.Sellers.SellersByIDs(fetchCtx, sellerIDs)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		fetchCtx, cancel := context.WithTimeout(ctx, e.config.Timeouts.Promotions)
		defer cancel()
		plans, err := e.providers.Promotions.ActivePlansBySellerIDs(fetchCtx, sellerIDs)
		if err != nil {
			e.degrade(snap, "promotions", err, logger)
			return
		}
		snap.plans = plans
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		fetchCtx, cancel := context.WithTimeout(ctx, e.config.Timeouts.Moderation)
		defer cancel()
		statuses, err := e.providers.Moderation.StatusesByProductIDs(fetchCtx, productIDs)
		if err != nil {
			e.degrade(snap, "moderation", err, logger)
			return
		}
		snap.moderation = statuses
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if sellerErr != nil {
		return mandatoryErr("sellers", sellerErr)
	}
	if snap.sellers == nil {
		snap.sellers = map[string]Seller{}
	}

	return nil
}

// degrade records an optional fetch falling back to its neutral default.
// The three snapshot-mutating callers run in disjoint phases, so the
// degraded slice needs guarding only within a phase.
func (e *Engine) degrade(snap *snapshot, provider string, err error, logger zerolog.Logger) {
	e.degradeMu.Lock()
	snap.degraded = append(snap.degraded, provider)
	e.degradeMu.Unlock()

	rankingDegradedFetches.WithLabelValues(provider).Inc()
	logger.Warn().
		Str("provider", provider).
		Err(err).
		Msg("optional fetch failed, degrading to neutral default")
}

// pinnedProducts returns the set of product IDs pinned by an active
// product-entity slot override at now.
func (s *snapshot) pinnedProducts(now time.Time) map[string]struct{} {
	pinned := make(map[string]struct{})
	for _, o := range s.overrides {
		if o.EntityType == SlotEntityProduct && o.Active(now) {
			pinned[o.PinnedEntityID] = struct{}{}
		}
	}
	return pinned
}

// distinctSellerIDs returns each seller ID once, in first-seen order.
func distinctSellerIDs(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	ids := make([]string, 0, len(products))
	for i := range products {
		id := products[i].SellerID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
