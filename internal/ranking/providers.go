// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package ranking

import "context"

// Note: these interfaces are the engine's only points of contact with the
// surrounding platform (catalog CRUD, admin tooling, plan billing,
// moderation queues, follow/wishlist UI). They are defined here and
// implemented elsewhere so the engine can be unit-tested with fakes and
// never imports a storage package.

// CatalogProvider supplies the raw product corpus.
type CatalogProvider interface {
	// Products returns the corpus, optionally narrowed by filter.
	// A nil filter returns every product.
	Products(ctx context.Context, filter *QuerySpec) ([]Product, error)
}

// SellerDirectory supplies seller records including verification and
// suspension state. Suspension must be read fresh on every ranking call.
type SellerDirectory interface {
	// SellerByID returns one seller, or nil when no record exists.
	SellerByID(ctx context.Context, id string) (*Seller, error)

	// SellersByIDs returns the sellers for the given IDs in one batched
	// lookup. IDs with no matching record are absent from the map.
	SellersByIDs(ctx context.Context, ids []string) (map[string]Seller, error)
}

// PromotionProvider supplies marketing-plan capability sets and
// administrator-configured ad-slot overrides.
type PromotionProvider interface {
	// ActivePlan returns the seller's active marketing plan, or nil when
	// the seller has none.
	ActivePlan(ctx context.Context, sellerID string) (*MarketingPlan, error)

	// ActivePlansBySellerIDs returns active plans for the given sellers in
	// one batched lookup. Sellers without an active plan are absent.
	ActivePlansBySellerIDs(ctx context.Context, sellerIDs []string) (map[string]MarketingPlan, error)

	// AdSlotOverrides returns all currently configured slot overrides,
	// including expired ones; callers filter with AdSlotOverride.Active.
	AdSlotOverrides(ctx context.Context) ([]AdSlotOverride, error)
}

// ModerationProvider supplies per-product demotion flags and unresolved
// report counts.
type ModerationProvider interface {
	// Status returns one product's moderation status. Products with no
	// moderation record get a zero status.
	Status(ctx context.Context, productID string) (ModerationStatus, error)

	// StatusesByProductIDs returns moderation statuses for the given
	// products in one batched lookup. Unflagged products are absent.
	StatusesByProductIDs(ctx context.Context, productIDs []string) (map[string]ModerationStatus, error)

	// UnresolvedReportCount returns the number of open reports against a
	// product.
	UnresolvedReportCount(ctx context.Context, productID string) (int, error)
}

// InteractionProvider supplies a user's follow and wishlist sets. Both are
// fetched fresh per call and never persisted by the engine.
type InteractionProvider interface {
	// FollowedSellerIDs returns the set of sellers the user follows.
	FollowedSellerIDs(ctx context.Context, userID string) (map[string]struct{}, error)

	// WishlistedProductIDs returns the set of products on the user's
	// wishlist.
	WishlistedProductIDs(ctx context.Context, userID string) (map[string]struct{}, error)
}

// Providers bundles the five data sources the engine consumes.
type Providers struct {
	Catalog      CatalogProvider
	Sellers      SellerDirectory
	Promotions   PromotionProvider
	Moderation   ModerationProvider
	Interactions InteractionProvider
}
