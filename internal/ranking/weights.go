// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package ranking

import "fmt"

// Factor names used as contribution keys in RankedProduct.Contributions and
// as labels in diagnostics. The sum of a product's contributions always
// equals its score.
const (
	FactorManualOverride    = "manual_override"
	FactorSponsorship       = "sponsorship"
	FactorVerifiedSeller    = "verified_seller"
	FactorRating            = "rating"
	FactorReviews           = "reviews"
	FactorDemotion          = "demotion"
	FactorUnresolvedReports = "unresolved_reports"
	FactorFollow            = "follow"
	FactorWishlist          = "wishlist"
)

// Weights holds the tunable magnitudes of every scoring factor.
//
// The defaults preserve the strict precedence ManualOverride > Sponsorship >
// VerifiedSeller > personalization and quality signals, so that a manual pin
// beats any plan boost, a plan boost beats any organic combination, and a
// verified badge beats any single quality signal. Validate enforces that
// ordering for custom values.
type Weights struct {
	// ManualOverride is added when an active product-entity ad-slot
	// override pins the product. Seller-entity pins reserve display slots
	// and do not score. Marks the product sponsored.
	ManualOverride float64 `json:"manual_override" koanf:"manual_override"`

	// Sponsorship is added when the seller's active plan grants a
	// placement-boosting capability. Marks the product sponsored.
	Sponsorship float64 `json:"sponsorship" koanf:"sponsorship"`

	// VerifiedSeller is added flat for verified sellers.
	VerifiedSeller float64 `json:"verified_seller" koanf:"verified_seller"`

	// RatingWeight multiplies the continuous rating in [0, 5].
	RatingWeight float64 `json:"rating_weight" koanf:"rating_weight"`

	// ReviewWeight multiplies the raw review count. The product is
	// unbounded: an extreme review count can dominate the ranking. That
	// matches the historical behavior and is kept as a tuning concern, not
	// silently capped here.
	ReviewWeight float64 `json:"review_weight" koanf:"review_weight"`

	// HasFollow is added when the requesting user follows the seller.
	HasFollow float64 `json:"has_follow" koanf:"has_follow"`

	// InWishlist is added when the product is on the user's wishlist.
	InWishlist float64 `json:"in_wishlist" koanf:"in_wishlist"`

	// ShadowBanPenalty is added (negative) for moderation-demoted products.
	ShadowBanPenalty float64 `json:"shadow_ban_penalty" koanf:"shadow_ban_penalty"`

	// UnresolvedReportPenalty is added (negative) once per open report.
	UnresolvedReportPenalty float64 `json:"unresolved_report_penalty" koanf:"unresolved_report_penalty"`
}

// DefaultWeights returns the production default magnitudes.
func DefaultWeights() Weights {
	return Weights{
		ManualOverride:          20000,
		Sponsorship:             10000,
		VerifiedSeller:          500,
		RatingWeight:            50,
		ReviewWeight:            1,
		HasFollow:               200,
		InWishlist:              100,
		ShadowBanPenalty:        -5000,
		UnresolvedReportPenalty: -100,
	}
}

// Validate checks weight signs and the placement precedence ordering.
func (w Weights) Validate() error {
	if w.ManualOverride <= 0 {
		return fmt.Errorf("manual_override must be positive, got %v", w.ManualOverride)
	}
	if w.Sponsorship <= 0 {
		return fmt.Errorf("sponsorship must be positive, got %v", w.Sponsorship)
	}
	if w.VerifiedSeller < 0 {
		return fmt.Errorf("verified_seller must be non-negative, got %v", w.VerifiedSeller)
	}
	if w.RatingWeight < 0 {
		return fmt.Errorf("rating_weight must be non-negative, got %v", w.RatingWeight)
	}
	if w.ReviewWeight < 0 {
		return fmt.Errorf("review_weight must be non-negative, got %v", w.ReviewWeight)
	}
	if w.HasFollow < 0 {
		return fmt.Errorf("has_follow must be non-negative, got %v", w.HasFollow)
	}
	if w.InWishlist < 0 {
		return fmt.Errorf("in_wishlist must be non-negative, got %v", w.InWishlist)
	}
	if w.ShadowBanPenalty > 0 {
		return fmt.Errorf("shadow_ban_penalty must be non-positive, got %v", w.ShadowBanPenalty)
	}
	if w.UnresolvedReportPenalty > 0 {
		return fmt.Errorf("unresolved_report_penalty must be non-positive, got %v", w.UnresolvedReportPenalty)
	}

	if w.ManualOverride <= w.Sponsorship {
		return fmt.Errorf("manual_override (%v) must exceed sponsorship (%v)", w.ManualOverride, w.Sponsorship)
	}
	if w.Sponsorship <= w.VerifiedSeller {
		return fmt.Errorf("sponsorship (%v) must exceed verified_seller (%v)", w.Sponsorship, w.VerifiedSeller)
	}

	return nil
}
