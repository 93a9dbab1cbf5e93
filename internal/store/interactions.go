// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// InteractionStore implements ranking.InteractionProvider against the
// seller_follows and wishlist_items tables.
type InteractionStore struct {
	db *sql.DB
}

// NewInteractionStore creates an interaction provider over db.
func NewInteractionStore(db *sql.DB) *InteractionStore {
	return &InteractionStore{db: db}
}

// FollowedSellerIDs returns the set of sellers the user follows.
func (s *InteractionStore) FollowedSellerIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	return s.idSet(ctx, "interactions", "followed_seller_ids",
		"SELECT seller_id FROM seller_follows WHERE user_id = $1", userID)
}

// WishlistedProductIDs returns the set of products on the user's wishlist.
func (s *InteractionStore) WishlistedProductIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	return s.idSet(ctx, "interactions", "wishlisted_product_ids",
		"SELECT product_id FROM wishlist_items WHERE user_id = $1", userID)
}

// idSet runs a single-column ID query and collects the result into a set.
func (s *InteractionStore) idSet(ctx context.Context, provider, operation, query, userID string) (map[string]struct{}, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, query, userID)
	observe(provider, operation, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", operation, err)
	}
	defer closeRows(rows)

	set := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", operation, err)
		}
		set[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", operation, err)
	}

	return set, nil
}
