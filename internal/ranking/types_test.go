// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package ranking

import (
	"strings"
	"testing"
	"time"
)

func TestParseCapability(t *testing.T) {
	known := []Capability{
		CapabilitySearchPriority,
		CapabilityHomepageRotation,
		CapabilityCategorySpotlight,
		CapabilityBadge,
	}
	for _, c := range known {
		got, ok := ParseCapability(c.String())
		if !ok || got != c {
			t.Errorf("ParseCapability(%q) = %v, %v", c.String(), got, ok)
		}
	}

	if _, ok := ParseCapability("product:search_priority"); ok {
		t.Error("legacy raw capability strings are outside the closed vocabulary")
	}
	if _, ok := ParseCapability(""); ok {
		t.Error("empty capability must not parse")
	}
}

func TestCapabilityBoostsPlacement(t *testing.T) {
	tests := []struct {
		c    Capability
		want bool
	}{
		{CapabilitySearchPriority, true},
		{CapabilityHomepageRotation, true},
		{CapabilityCategorySpotlight, true},
		{CapabilityBadge, false},
	}
	for _, tt := range tests {
		if got := tt.c.BoostsPlacement(); got != tt.want {
			t.Errorf("%s.BoostsPlacement() = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestParseVerificationStatus(t *testing.T) {
	tests := []struct {
		in   string
		want VerificationStatus
	}{
		{"verified", VerificationVerified},
		{"pending", VerificationPending},
		{"rejected", VerificationRejected},
		{"unverified", VerificationUnverified},
		{"", VerificationUnverified},
		{"garbage", VerificationUnverified},
	}
	for _, tt := range tests {
		if got := ParseVerificationStatus(tt.in); got != tt.want {
			t.Errorf("ParseVerificationStatus(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAdSlotOverrideActive(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		o    AdSlotOverride
		want bool
	}{
		{"vacant slot", AdSlotOverride{SlotID: "home-1"}, false},
		{"no expiry", AdSlotOverride{SlotID: "home-1", PinnedEntityID: "p1"}, true},
		{"future expiry", AdSlotOverride{PinnedEntityID: "p1", ExpiresAt: now.Add(time.Hour)}, true},
		{"past expiry", AdSlotOverride{PinnedEntityID: "p1", ExpiresAt: now.Add(-time.Hour)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.o.Active(now); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuerySpecValidate(t *testing.T) {
	long := strings.Repeat("x", 300)

	var nilSpec *QuerySpec
	if err := nilSpec.Validate(); err != nil {
		t.Errorf("nil filter is valid, got %v", err)
	}
	if err := (&QuerySpec{Category: "ceramics", NameQuery: "vase"}).Validate(); err != nil {
		t.Errorf("reasonable filter is valid, got %v", err)
	}

	for _, bad := range []*QuerySpec{
		{Category: long},
		{SellerID: long},
		{NameQuery: long},
	} {
		if err := bad.Validate(); err == nil {
			t.Errorf("expected validation error for %+v", bad)
		}
	}
}

func TestMarketingPlanHas(t *testing.T) {
	plan := MarketingPlan{Capabilities: []Capability{CapabilityBadge}}
	if !plan.Has(CapabilityBadge) {
		t.Error("plan should have badge capability")
	}
	if plan.Has(CapabilitySearchPriority) {
		t.Error("plan should not have search priority")
	}
	if plan.BoostsPlacement() {
		t.Error("badge-only plan must not boost placement")
	}
}
