// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/kestrelworks/tradrank/internal/ranking"
)

// CatalogStore implements ranking.CatalogProvider against the products table.
type CatalogStore struct {
	db *sql.DB
}

// NewCatalogStore creates a catalog provider over db.
func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

const productColumns = "id, seller_id, name, slug, category, rating, review_count, created_at, updated_at"

// Products returns the corpus, optionally narrowed by filter. Filtering is
// pushed down to SQL so unfiltered corpus rows never cross the wire.
func (s *CatalogStore) Products(ctx context.Context, filter *ranking.QuerySpec) ([]ranking.Product, error) {
	start := time.Now()

	query, args := buildProductQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	observe("catalog", "products", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer closeRows(rows)

	var products []ranking.Product
	for rows.Next() {
		var p ranking.Product
		if err := rows.Scan(&p.ID, &p.SellerID, &p.Name, &p.Slug, &p.Category,
			&p.Rating, &p.ReviewCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product rows: %w", err)
	}

	return products, nil
}

// buildProductQuery assembles the products SELECT with positional parameters
// for each populated filter field. A nil filter selects the whole corpus.
func buildProductQuery(filter *ranking.QuerySpec) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(productColumns)
	sb.WriteString(" FROM products")

	var conds []string
	var args []interface{}

	if filter != nil {
		if filter.Category != "" {
			args = append(args, filter.Category)
			conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
		}
		if filter.SellerID != "" {
			args = append(args, filter.SellerID)
			conds = append(conds, fmt.Sprintf("seller_id = $%d", len(args)))
		}
		if filter.NameQuery != "" {
			args = append(args, filter.NameQuery)
			conds = append(conds, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", len(args)))
		}
	}

	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY id")

	return sb.String(), args
}
