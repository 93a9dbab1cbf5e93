// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package ranking

import (
	"time"
)

// VerificationStatus classifies a seller's identity verification state.
type VerificationStatus int

const (
	// VerificationUnverified indicates the seller has not started verification.
	VerificationUnverified VerificationStatus = iota
	// VerificationPending indicates verification is in review.
	VerificationPending
	// VerificationVerified indicates the seller passed verification.
	VerificationVerified
	// VerificationRejected indicates verification was refused.
	VerificationRejected
)

// String returns a human-readable name for the verification status.
func (s VerificationStatus) String() string {
	switch s {
	case VerificationUnverified:
		return "unverified"
	case VerificationPending:
		return "pending"
	case VerificationVerified:
		return "verified"
	case VerificationRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ParseVerificationStatus maps a stored status string to its enum value.
// Unknown values map to VerificationUnverified, the conservative default.
func ParseVerificationStatus(s string) VerificationStatus {
	switch s {
	case "pending":
		return VerificationPending
	case "verified":
		return VerificationVerified
	case "rejected":
		return VerificationRejected
	default:
		return VerificationUnverified
	}
}

// Capability is a marketing-plan capability tag. The vocabulary is closed:
// adding a capability means adding a constant here, which forces every
// switch over the type to be revisited.
type Capability int

const (
	// CapabilitySearchPriority boosts placement in search result rankings.
	CapabilitySearchPriority Capability = iota
	// CapabilityHomepageRotation enters the seller's products into homepage
	// ad-slot rotation.
	CapabilityHomepageRotation
	// CapabilityCategorySpotlight highlights the seller within a category page.
	CapabilityCategorySpotlight
	// CapabilityBadge renders a plan badge on the seller's storefront.
	CapabilityBadge
)

// String returns the stored wire name for the capability.
func (c Capability) String() string {
	switch c {
	case CapabilitySearchPriority:
		return "search-priority"
	case CapabilityHomepageRotation:
		return "homepage-rotation"
	case CapabilityCategorySpotlight:
		return "category-spotlight"
	case CapabilityBadge:
		return "badge"
	default:
		return "unknown"
	}
}

// ParseCapability maps a stored capability string to its enum value.
// The second return is false for values outside the closed vocabulary.
func ParseCapability(s string) (Capability, bool) {
	switch s {
	case "search-priority":
		return CapabilitySearchPriority, true
	case "homepage-rotation":
		return CapabilityHomepageRotation, true
	case "category-spotlight":
		return CapabilityCategorySpotlight, true
	case "badge":
		return CapabilityBadge, true
	default:
		return 0, false
	}
}

// BoostsPlacement reports whether the capability qualifies a seller's
// products for the sponsorship score contribution. The switch is exhaustive
// over the closed vocabulary so a new capability must state its intent.
func (c Capability) BoostsPlacement() bool {
	switch c {
	case CapabilitySearchPriority, CapabilityHomepageRotation, CapabilityCategorySpotlight:
		return true
	case CapabilityBadge:
		return false
	default:
		return false
	}
}

// Product is a single catalog entry owned by exactly one seller.
type Product struct {
	// ID is the unique, immutable product identifier.
	ID string `json:"id"`

	// SellerID references the owning seller. Always set.
	SellerID string `json:"seller_id"`

	// Name is the display name.
	Name string `json:"name"`

	// Slug is the URL-safe identifier.
	Slug string `json:"slug"`

	// Category is the catalog category key.
	Category string `json:"category"`

	// Rating is the continuous average review rating in [0, 5].
	Rating float64 `json:"rating"`

	// ReviewCount is the non-negative number of reviews.
	ReviewCount int `json:"review_count"`

	// CreatedAt is when the seller published the product.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the product was last edited.
	UpdatedAt time.Time `json:"updated_at"`
}

// Seller is a seller/manufacturer directory record.
type Seller struct {
	// ID is the unique seller identifier.
	ID string `json:"id"`

	// Name is the storefront display name.
	Name string `json:"name"`

	// Location is the seller's display location.
	Location string `json:"location,omitempty"`

	// Verification is the identity verification state.
	Verification VerificationStatus `json:"verification"`

	// Suspended marks the seller as administratively suspended. A suspended
	// seller's products are hard-filtered out of every ranking.
	Suspended bool `json:"suspended"`

	// SuspensionReason records why the seller was suspended.
	SuspensionReason string `json:"suspension_reason,omitempty"`

	// ActivePlanID references the seller's active marketing plan, if any.
	ActivePlanID string `json:"active_plan_id,omitempty"`
}

// MarketingPlan is a purchased marketing plan with its capability set.
type MarketingPlan struct {
	// ID is the unique plan identifier.
	ID string `json:"id"`

	// Name is the plan display name.
	Name string `json:"name"`

	// Capabilities is the closed set of capability tags the plan grants.
	Capabilities []Capability `json:"capabilities"`
}

// Has reports whether the plan grants the given capability.
func (p MarketingPlan) Has(c Capability) bool {
	for _, got := range p.Capabilities {
		if got == c {
			return true
		}
	}
	return false
}

// BoostsPlacement reports whether any granted capability qualifies for the
// sponsorship contribution.
func (p MarketingPlan) BoostsPlacement() bool {
	for _, c := range p.Capabilities {
		if c.BoostsPlacement() {
			return true
		}
	}
	return false
}

// SlotEntityType identifies what kind of entity an ad-slot override pins.
type SlotEntityType int

const (
	// SlotEntityProduct pins a single product.
	SlotEntityProduct SlotEntityType = iota
	// SlotEntitySeller pins a seller (all of that seller's products).
	SlotEntitySeller
)

// String returns the stored wire name for the entity type.
func (t SlotEntityType) String() string {
	switch t {
	case SlotEntityProduct:
		return "product"
	case SlotEntitySeller:
		return "seller"
	default:
		return "unknown"
	}
}

// ParseSlotEntityType maps a stored entity type string to its enum value.
func ParseSlotEntityType(s string) (SlotEntityType, bool) {
	switch s {
	case "product":
		return SlotEntityProduct, true
	case "seller":
		return SlotEntitySeller, true
	default:
		return 0, false
	}
}

// AdSlotOverride is an administrator-configured pin that forces an entity
// into a display slot. A pinned product outranks all organic scoring.
type AdSlotOverride struct {
	// SlotID identifies the display slot being overridden.
	SlotID string `json:"slot_id"`

	// EntityType is the kind of entity pinned into the slot.
	EntityType SlotEntityType `json:"entity_type"`

	// PinnedEntityID is the pinned product or seller ID. Empty means the
	// slot override is configured but currently vacant.
	PinnedEntityID string `json:"pinned_entity_id,omitempty"`

	// ExpiresAt is when the pin lapses. Zero means no expiry.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Active reports whether the override is populated and unexpired at now.
func (o AdSlotOverride) Active(now time.Time) bool {
	if o.PinnedEntityID == "" {
		return false
	}
	return o.ExpiresAt.IsZero() || now.Before(o.ExpiresAt)
}

// ModerationStatus carries a product's moderation-derived ranking inputs.
type ModerationStatus struct {
	// ReferenceID is the moderated product ID.
	ReferenceID string `json:"reference_id"`

	// Demoted marks the product as shadow-banned: it stays in the catalog
	// but takes a large negative score contribution.
	Demoted bool `json:"demoted"`

	// UnresolvedReports is the number of open abuse reports.
	UnresolvedReports int `json:"unresolved_reports"`
}

// UserInteractions is a requesting user's per-call personalization sets.
// Both sets are empty for anonymous callers.
type UserInteractions struct {
	// FollowedSellerIDs are sellers the user follows.
	FollowedSellerIDs map[string]struct{} `json:"-"`

	// WishlistedProductIDs are products on the user's wishlist.
	WishlistedProductIDs map[string]struct{} `json:"-"`
}

// RankedProduct is one entry of the engine's ordered output. It exposes only
// the fields the rendering layer needs; no other product or seller data
// leaves the engine.
type RankedProduct struct {
	// ID is the product ID.
	ID string `json:"id"`

	// SellerID is the owning seller's ID.
	SellerID string `json:"seller_id"`

	// Name is the product display name.
	Name string `json:"name"`

	// Slug is the product URL slug.
	Slug string `json:"slug"`

	// Score is the total additive ranking score.
	Score float64 `json:"score"`

	// Sponsored is true when placement was boosted by a manual override or
	// a qualifying marketing-plan capability.
	Sponsored bool `json:"sponsored"`

	// Contributions maps factor names to their score contributions. The sum
	// of all contributions equals Score.
	Contributions map[string]float64 `json:"contributions,omitempty"`

	// SellerName is the owning seller's display name.
	SellerName string `json:"seller_name"`

	// SellerVerified is true when the owning seller passed verification.
	SellerVerified bool `json:"seller_verified"`

	// SellerLocation is the owning seller's display location.
	SellerLocation string `json:"seller_location,omitempty"`
}

// QuerySpec narrows the catalog corpus before ranking. All fields are
// optional; a zero QuerySpec ranks the whole corpus. Query matching
// semantics belong to the catalog provider, not the engine.
type QuerySpec struct {
	// Category restricts the corpus to one category key.
	Category string `json:"category,omitempty"`

	// SellerID restricts the corpus to one seller's products.
	SellerID string `json:"seller_id,omitempty"`

	// NameQuery is passed through to the catalog provider as an opaque
	// name filter.
	NameQuery string `json:"q,omitempty"`
}

const (
	maxFilterFieldLen = 64
	maxNameQueryLen   = 128
)

// Validate rejects malformed filters before any provider call is made.
func (q *QuerySpec) Validate() error {
	if q == nil {
		return nil
	}
	if len(q.Category) > maxFilterFieldLen {
		return invalidFilterf("category exceeds %d characters", maxFilterFieldLen)
	}
	if len(q.SellerID) > maxFilterFieldLen {
		return invalidFilterf("seller_id exceeds %d characters", maxFilterFieldLen)
	}
	if len(q.NameQuery) > maxNameQueryLen {
		return invalidFilterf("q exceeds %d characters", maxNameQueryLen)
	}
	return nil
}

// Request is one ranking invocation.
type Request struct {
	// UserID is the requesting user, empty for anonymous callers. Anonymous
	// requests skip the interaction fetch and apply no personalization.
	UserID string `json:"user_id,omitempty"`

	// Filter optionally narrows the corpus.
	Filter *QuerySpec `json:"filter,omitempty"`

	// Limit truncates the ordered result after sorting. Zero means the
	// engine's configured default; the configured maximum always applies.
	Limit int `json:"limit,omitempty"`

	// RequestID correlates logs across the call. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}
