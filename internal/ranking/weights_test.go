// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package ranking

import "testing"

func TestDefaultWeightsValid(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Fatalf("default weights must validate: %v", err)
	}
}

func TestWeightsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Weights)
	}{
		{"zero manual override", func(w *Weights) { w.ManualOverride = 0 }},
		{"negative sponsorship", func(w *Weights) { w.Sponsorship = -1 }},
		{"negative verified seller", func(w *Weights) { w.VerifiedSeller = -1 }},
		{"negative rating weight", func(w *Weights) { w.RatingWeight = -1 }},
		{"negative review weight", func(w *Weights) { w.ReviewWeight = -0.5 }},
		{"negative follow", func(w *Weights) { w.HasFollow = -1 }},
		{"negative wishlist", func(w *Weights) { w.InWishlist = -1 }},
		{"positive shadow ban penalty", func(w *Weights) { w.ShadowBanPenalty = 10 }},
		{"positive report penalty", func(w *Weights) { w.UnresolvedReportPenalty = 1 }},
		{"sponsorship above manual override", func(w *Weights) { w.Sponsorship = w.ManualOverride + 1 }},
		{"verified above sponsorship", func(w *Weights) { w.VerifiedSeller = w.Sponsorship + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			tt.mutate(&w)
			if err := w.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero catalog timeout", func(c *Config) { c.Timeouts.Catalog = 0 }},
		{"zero sellers timeout", func(c *Config) { c.Timeouts.Sellers = 0 }},
		{"zero promotions timeout", func(c *Config) { c.Timeouts.Promotions = 0 }},
		{"zero moderation timeout", func(c *Config) { c.Timeouts.Moderation = 0 }},
		{"zero interactions timeout", func(c *Config) { c.Timeouts.Interactions = 0 }},
		{"zero default limit", func(c *Config) { c.DefaultLimit = 0 }},
		{"max below default", func(c *Config) { c.MaxLimit = c.DefaultLimit - 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Weights.RatingWeight = 999

	if cfg.Weights.RatingWeight == 999 {
		t.Error("mutating the clone must not affect the original")
	}
}
