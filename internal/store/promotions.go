// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/kestrelworks/tradrank/internal/metrics"
	"github.com/kestrelworks/tradrank/internal/ranking"
)

// PromotionStore implements ranking.PromotionProvider against the
// marketing_plans and ad_slot_overrides tables.
type PromotionStore struct {
	db *sql.DB
}

// NewPromotionStore creates a promotion provider over db.
func NewPromotionStore(db *sql.DB) *PromotionStore {
	return &PromotionStore{db: db}
}

// ActivePlan returns the seller's active marketing plan, or nil when the
// seller has none.
func (s *PromotionStore) ActivePlan(ctx context.Context, sellerID string) (*ranking.MarketingPlan, error) {
	start := time.Now()

	row := s.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.capabilities
		FROM sellers s
		JOIN marketing_plans p ON p.id = s.active_plan_id
		WHERE s.id = $1`, sellerID)

	var plan ranking.MarketingPlan
	var caps pq.StringArray
	err := row.Scan(&plan.ID, &plan.Name, &caps)
	if errors.Is(err, sql.ErrNoRows) {
		observe("promotions", "active_plan", start, nil)
		return nil, nil
	}
	observe("promotions", "active_plan", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query active plan for seller %s: %w", sellerID, err)
	}

	plan.Capabilities = parseCapabilities(caps)
	return &plan, nil
}

// ActivePlansBySellerIDs returns active plans for the given sellers in one
// batched lookup. Sellers without an active plan are absent from the map.
func (s *PromotionStore) ActivePlansBySellerIDs(ctx context.Context, sellerIDs []string) (map[string]ranking.MarketingPlan, error) {
	if len(sellerIDs) == 0 {
		return map[string]ranking.MarketingPlan{}, nil
	}

	start := time.Now()
	metrics.RecordProviderBatch("promotions", len(sellerIDs))

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, p.id, p.name, p.capabilities
		FROM sellers s
		JOIN marketing_plans p ON p.id = s.active_plan_id
		WHERE s.id = ANY($1)
		ORDER BY s.id`, pq.Array(sellerIDs))
	observe("promotions", "active_plans_by_seller_ids", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans batch: %w", err)
	}
	defer closeRows(rows)

	plans := make(map[string]ranking.MarketingPlan)
	for rows.Next() {
		var sellerID string
		var plan ranking.MarketingPlan
		var caps pq.StringArray
		if err := rows.Scan(&sellerID, &plan.ID, &plan.Name, &caps); err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		plan.Capabilities = parseCapabilities(caps)
		plans[sellerID] = plan
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plan rows: %w", err)
	}

	return plans, nil
}

// AdSlotOverrides returns all configured slot overrides including expired
// ones; the engine filters with AdSlotOverride.Active.
func (s *PromotionStore) AdSlotOverrides(ctx context.Context) ([]ranking.AdSlotOverride, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, `
		SELECT slot_id, entity_type, COALESCE(pinned_entity_id, ''), expires_at
		FROM ad_slot_overrides
		ORDER BY slot_id`)
	observe("promotions", "ad_slot_overrides", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query ad slot overrides: %w", err)
	}
	defer closeRows(rows)

	var overrides []ranking.AdSlotOverride
	for rows.Next() {
		var o ranking.AdSlotOverride
		var entityType string
		var expiresAt sql.NullTime
		if err := rows.Scan(&o.SlotID, &entityType, &o.PinnedEntityID, &expiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan ad slot override row: %w", err)
		}

		parsed, ok := ranking.ParseSlotEntityType(entityType)
		if !ok {
			logger := componentLogger()
			logger.Warn().
				Str("slot_id", o.SlotID).
				Str("entity_type", entityType).
				Msg("Skipping ad slot override with unknown entity type")
			continue
		}
		o.EntityType = parsed
		if expiresAt.Valid {
			o.ExpiresAt = expiresAt.Time
		}
		overrides = append(overrides, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ad slot override rows: %w", err)
	}

	return overrides, nil
}

// parseCapabilities maps stored capability strings to the closed enum,
// skipping values outside the vocabulary. An old row carrying a retired
// capability string degrades to a smaller capability set, not an error.
func parseCapabilities(raw []string) []ranking.Capability {
	caps := make([]ranking.Capability, 0, len(raw))
	for _, s := range raw {
		c, ok := ranking.ParseCapability(s)
		if !ok {
			logger := componentLogger()
			logger.Warn().Str("capability", s).Msg("Skipping unknown plan capability")
			continue
		}
		caps = append(caps, c)
	}
	return caps
}
