// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package store

import (
	"strings"
	"testing"

	"github.com/kestrelworks/tradrank/internal/ranking"
)

func TestBuildProductQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		filter    *ranking.QuerySpec
		wantConds []string
		wantArgs  int
	}{
		{
			name:      "nil filter selects whole corpus",
			filter:    nil,
			wantConds: nil,
			wantArgs:  0,
		},
		{
			name:      "empty filter selects whole corpus",
			filter:    &ranking.QuerySpec{},
			wantConds: nil,
			wantArgs:  0,
		},
		{
			name:      "category only",
			filter:    &ranking.QuerySpec{Category: "ceramics"},
			wantConds: []string{"category = $1"},
			wantArgs:  1,
		},
		{
			name:      "seller only",
			filter:    &ranking.QuerySpec{SellerID: "sel_1"},
			wantConds: []string{"seller_id = $1"},
			wantArgs:  1,
		},
		{
			name:      "name query only",
			filter:    &ranking.QuerySpec{NameQuery: "lamp"},
			wantConds: []string{"name ILIKE"},
			wantArgs:  1,
		},
		{
			name:   "all fields",
			filter: &ranking.QuerySpec{Category: "ceramics", SellerID: "sel_1", NameQuery: "vase"},
			wantConds: []string{
				"category = $1",
				"seller_id = $2",
				"$3",
			},
			wantArgs: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			query, args := buildProductQuery(tt.filter)

			if len(args) != tt.wantArgs {
				t.Errorf("got %d args, want %d", len(args), tt.wantArgs)
			}
			if !strings.HasSuffix(query, "ORDER BY id") {
				t.Errorf("query must order by id for determinism: %s", query)
			}
			if tt.wantConds == nil && strings.Contains(query, "WHERE") {
				t.Errorf("expected no WHERE clause: %s", query)
			}
			for _, cond := range tt.wantConds {
				if !strings.Contains(query, cond) {
					t.Errorf("query missing %q: %s", cond, query)
				}
			}
		})
	}
}

func TestParseCapabilities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  []string
		want []ranking.Capability
	}{
		{
			name: "all known",
			raw:  []string{"search-priority", "badge"},
			want: []ranking.Capability{ranking.CapabilitySearchPriority, ranking.CapabilityBadge},
		},
		{
			name: "unknown skipped",
			raw:  []string{"search-priority", "teleport", "badge"},
			want: []ranking.Capability{ranking.CapabilitySearchPriority, ranking.CapabilityBadge},
		},
		{
			name: "all unknown",
			raw:  []string{"foo", "bar"},
			want: []ranking.Capability{},
		},
		{
			name: "empty",
			raw:  nil,
			want: []ranking.Capability{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := parseCapabilities(tt.raw)

			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("capability[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
