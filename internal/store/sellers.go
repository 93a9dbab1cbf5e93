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

// SellerStore implements ranking.SellerDirectory against the sellers table.
type SellerStore struct {
	db *sql.DB
}

// NewSellerStore creates a seller directory over db.
func NewSellerStore(db *sql.DB) *SellerStore {
	return &SellerStore{db: db}
}

const sellerColumns = `id, name, COALESCE(location, ''), verification, suspended,
	COALESCE(suspension_reason, ''), COALESCE(active_plan_id, '')`

// SellerByID returns one seller, or nil when no record exists.
func (s *SellerStore) SellerByID(ctx context.Context, id string) (*ranking.Seller, error) {
	start := time.Now()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+sellerColumns+" FROM sellers WHERE id = $1", id)

	seller, err := scanSeller(row)
	if errors.Is(err, sql.ErrNoRows) {
		observe("sellers", "seller_by_id", start, nil)
		return nil, nil
	}
	observe("sellers", "seller_by_id", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query seller %s: %w", id, err)
	}

	return &seller, nil
}

// SellersByIDs returns the sellers for the given IDs in one batched lookup.
// IDs with no matching record are absent from the map.
func (s *SellerStore) SellersByIDs(ctx context.Context, ids []string) (map[string]ranking.Seller, error) {
	if len(ids) == 0 {
		return map[string]ranking.Seller{}, nil
	}

	start := time.Now()
	metrics.RecordProviderBatch("sellers", len(ids))

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+sellerColumns+" FROM sellers WHERE id = ANY($1) ORDER BY id",
		pq.Array(ids))
	observe("sellers", "sellers_by_ids", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query sellers batch: %w", err)
	}
	defer closeRows(rows)

	sellers := make(map[string]ranking.Seller, len(ids))
	for rows.Next() {
		seller, err := scanSeller(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seller row: %w", err)
		}
		sellers[seller.ID] = seller
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate seller rows: %w", err)
	}

	return sellers, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSeller reads one seller row. Unknown verification strings map to
// unverified rather than failing the whole batch.
func scanSeller(row rowScanner) (ranking.Seller, error) {
	var seller ranking.Seller
	var verification string

	err := row.Scan(&seller.ID, &seller.Name, &seller.Location, &verification,
		&seller.Suspended, &seller.SuspensionReason, &seller.ActivePlanID)
	if err != nil {
		return ranking.Seller{}, err
	}

	seller.Verification = ranking.ParseVerificationStatus(verification)
	return seller, nil
}
