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

	"github.com/lib/pq"

	"github.com/kestrelworks/tradrank/internal/metrics"
	"github.com/kestrelworks/tradrank/internal/ranking"
)

// ModerationStore implements ranking.ModerationProvider against the
// moderation_flags and moderation_reports tables.
type ModerationStore struct {
	db *sql.DB
}

// NewModerationStore creates a moderation provider over db.
func NewModerationStore(db *sql.DB) *ModerationStore {
	return &ModerationStore{db: db}
}

// moderationBatchQuery joins demotion flags with open report counts. A
// product can have reports without a flag row and vice versa, hence the
// full outer join.
const moderationBatchQuery = `
	WITH open_reports AS (
		SELECT product_id, COUNT(*) AS report_count
		FROM moderation_reports
		WHERE resolved_at IS NULL AND product_id = ANY($1)
		GROUP BY product_id
	)
	SELECT COALESCE(f.product_id, r.product_id),
	       COALESCE(f.demoted, FALSE),
	       COALESCE(r.report_count, 0)
	FROM moderation_flags f
	FULL OUTER JOIN open_reports r ON r.product_id = f.product_id
	WHERE COALESCE(f.product_id, r.product_id) = ANY($1)`

// Status returns one product's moderation status. Products with no
// moderation record get a zero status.
func (s *ModerationStore) Status(ctx context.Context, productID string) (ranking.ModerationStatus, error) {
	statuses, err := s.StatusesByProductIDs(ctx, []string{productID})
	if err != nil {
		return ranking.ModerationStatus{}, err
	}
	if status, ok := statuses[productID]; ok {
		return status, nil
	}
	return ranking.ModerationStatus{ReferenceID: productID}, nil
}

// StatusesByProductIDs returns moderation statuses for the given products in
// one batched lookup. Unflagged products are absent from the map.
func (s *ModerationStore) StatusesByProductIDs(ctx context.Context, productIDs []string) (map[string]ranking.ModerationStatus, error) {
	if len(productIDs) == 0 {
		return map[string]ranking.ModerationStatus{}, nil
	}

	start := time.Now()
	metrics.RecordProviderBatch("moderation", len(productIDs))

	rows, err := s.db.QueryContext(ctx, moderationBatchQuery, pq.Array(productIDs))
	observe("moderation", "statuses_by_product_ids", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query moderation batch: %w", err)
	}
	defer closeRows(rows)

	statuses := make(map[string]ranking.ModerationStatus)
	for rows.Next() {
		var status ranking.ModerationStatus
		if err := rows.Scan(&status.ReferenceID, &status.Demoted, &status.UnresolvedReports); err != nil {
			return nil, fmt.Errorf("failed to scan moderation row: %w", err)
		}
		statuses[status.ReferenceID] = status
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate moderation rows: %w", err)
	}

	return statuses, nil
}

// UnresolvedReportCount returns the number of open reports against a product.
func (s *ModerationStore) UnresolvedReportCount(ctx context.Context, productID string) (int, error) {
	start := time.Now()

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM moderation_reports
		WHERE product_id = $1 AND resolved_at IS NULL`, productID).Scan(&count)
	observe("moderation", "unresolved_report_count", start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to count unresolved reports for %s: %w", productID, err)
	}

	return count, nil
}
