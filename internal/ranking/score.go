// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package ranking

import "time"

// scoreContext bundles the indexed snapshot views the scoring loop reads.
// Built once per call, before the loop.
type scoreContext struct {
	snap    *snapshot
	pinned  map[string]struct{}
	weights Weights
	now     time.Time
}

// newScoreContext indexes the snapshot for the scoring loop.
func (e *Engine) newScoreContext(snap *snapshot) *scoreContext {
	now := time.Now()
	return &scoreContext{
		snap:    snap,
		pinned:  snap.pinnedProducts(now),
		weights: e.config.Weights,
		now:     now,
	}
}

// scoreProduct computes one product's additive score with a named
// contribution per factor. The total is accumulated in a fixed factor
// order: float addition is not associative, so summing the contribution
// map (whose iteration order is randomized) could yield different totals
// for identical input. The map is diagnostic only.
//
// A factor whose data was degraded contributes its neutral default (zero)
// rather than being skipped; the factor's meaning never changes silently.
func (sc *scoreContext) scoreProduct(p Product, seller Seller) RankedProduct {
	w := sc.weights
	contributions := make(map[string]float64, 9)
	sponsored := false

	var total float64
	add := func(factor string, c float64) {
		contributions[factor] = c
		total += c
	}

	if _, ok := sc.pinned[p.ID]; ok {
		add(FactorManualOverride, w.ManualOverride)
		sponsored = true
	}

	if plan, ok := sc.snap.plans[p.SellerID]; ok && plan.BoostsPlacement() {
		add(FactorSponsorship, w.Sponsorship)
		sponsored = true
	}

	if seller.Verification == VerificationVerified {
		add(FactorVerifiedSeller, w.VerifiedSeller)
	}

	if c := p.Rating * w.RatingWeight; c != 0 {
		add(FactorRating, c)
	}
	if c := float64(p.ReviewCount) * w.ReviewWeight; c != 0 {
		add(FactorReviews, c)
	}

	if status, ok := sc.snap.moderation[p.ID]; ok {
		if status.Demoted {
			add(FactorDemotion, w.ShadowBanPenalty)
		}
		if status.UnresolvedReports > 0 {
			add(FactorUnresolvedReports, float64(status.UnresolvedReports)*w.UnresolvedReportPenalty)
		}
	}

	// Personalization: both sets are empty for anonymous callers, so the
	// contribution is exactly zero without a special case.
	if _, ok := sc.snap.follows[p.SellerID]; ok {
		add(FactorFollow, w.HasFollow)
	}
	if _, ok := sc.snap.wishlist[p.ID]; ok {
		add(FactorWishlist, w.InWishlist)
	}

	return RankedProduct{
		ID:             p.ID,
		SellerID:       p.SellerID,
		Name:           p.Name,
		Slug:           p.Slug,
		Score:          total,
		Sponsored:      sponsored,
		Contributions:  contributions,
		SellerName:     seller.Name,
		SellerVerified: seller.Verification == VerificationVerified,
		SellerLocation: seller.Location,
	}
}
