// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package ranking

import (
	"fmt"
	"time"
)

// Config contains all configuration for the ranking engine.
type Config struct {
	// Weights defines the magnitude of each scoring factor.
	Weights Weights `json:"weights" koanf:"weights"`

	// Timeouts bounds each provider fetch independently.
	Timeouts TimeoutConfig `json:"timeouts" koanf:"timeouts"`

	// DefaultLimit applies when a request carries no limit.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`

	// MaxLimit caps the result size regardless of the requested limit.
	MaxLimit int `json:"max_limit" koanf:"max_limit"`
}

// TimeoutConfig holds per-provider fetch deadlines. A mandatory provider
// that exceeds its deadline fails the call; an optional provider that does
// contributes its neutral default instead.
type TimeoutConfig struct {
	// Catalog bounds the product corpus fetch (mandatory).
	Catalog time.Duration `json:"catalog" koanf:"catalog"`

	// Sellers bounds the batched seller directory fetch (mandatory).
	Sellers time.Duration `json:"sellers" koanf:"sellers"`

	// Promotions bounds the plan and override fetches (optional).
	Promotions time.Duration `json:"promotions" koanf:"promotions"`

	// Moderation bounds the batched moderation fetch (optional).
	Moderation time.Duration `json:"moderation" koanf:"moderation"`

	// Interactions bounds the follow/wishlist fetches (optional).
	Interactions time.Duration `json:"interactions" koanf:"interactions"`
}

// DefaultConfig returns production-ready engine defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: DefaultWeights(),
		Timeouts: TimeoutConfig{
			Catalog:      2 * time.Second,
			Sellers:      2 * time.Second,
			Promotions:   time.Second,
			Moderation:   time.Second,
			Interactions: time.Second,
		},
		DefaultLimit: 50,
		MaxLimit:     200,
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}

	for name, d := range map[string]time.Duration{
		"catalog":      c.Timeouts.Catalog,
		"sellers":      c.Timeouts.Sellers,
		"promotions":   c.Timeouts.Promotions,
		"moderation":   c.Timeouts.Moderation,
		"interactions": c.Timeouts.Interactions,
	} {
		if d <= 0 {
			return fmt.Errorf("timeouts.%s must be positive, got %v", name, d)
		}
	}

	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit (%d) must be >= default_limit (%d)", c.MaxLimit, c.DefaultLimit)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}
