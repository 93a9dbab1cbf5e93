// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode int
		duration   time.Duration
	}{
		{
			name:       "successful GET request",
			method:     "GET",
			endpoint:   "/api/v1/rankings",
			statusCode: 200,
			duration:   25 * time.Millisecond,
		},
		{
			name:       "rejected filter",
			method:     "GET",
			endpoint:   "/api/v1/rankings",
			statusCode: 400,
			duration:   time.Millisecond,
		},
		{
			name:       "upstream unavailable",
			method:     "GET",
			endpoint:   "/api/v1/rankings",
			statusCode: 503,
			duration:   2 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)

			if got := testutil.CollectAndCount(APIRequestsTotal); got == 0 {
				t.Error("expected api_requests_total to have series after recording")
			}
		})
	}
}

func TestRecordProviderFetch(t *testing.T) {
	RecordProviderFetch("promotions", "active_plans_by_seller_ids", 10*time.Millisecond, nil)

	errBefore := testutil.ToFloat64(ProviderFetchErrors.WithLabelValues("promotions", "active_plans_by_seller_ids"))
	RecordProviderFetch("promotions", "active_plans_by_seller_ids", 10*time.Millisecond, errors.New("boom"))
	errAfter := testutil.ToFloat64(ProviderFetchErrors.WithLabelValues("promotions", "active_plans_by_seller_ids"))

	if errAfter != errBefore+1 {
		t.Errorf("expected error counter to increment, got %v -> %v", errBefore, errAfter)
	}
}

func TestRecordCacheHitMiss(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheHits.WithLabelValues("plans"))
	missesBefore := testutil.ToFloat64(CacheMisses.WithLabelValues("plans"))

	RecordCacheHit("plans")
	RecordCacheHit("plans")
	RecordCacheMiss("plans")

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("plans")); got != hitsBefore+2 {
		t.Errorf("cache hits = %v, want %v", got, hitsBefore+2)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("plans")); got != missesBefore+1 {
		t.Errorf("cache misses = %v, want %v", got, missesBefore+1)
	}
}

func TestRecordCircuitBreakerTransition(t *testing.T) {
	tests := []struct {
		name  string
		to    string
		state float64
	}{
		{name: "open", to: "open", state: 2},
		{name: "half-open", to: "half-open", state: 1},
		{name: "closed", to: "closed", state: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordCircuitBreakerTransition("promotions", "closed", tt.to)

			if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("promotions")); got != tt.state {
				t.Errorf("state gauge = %v, want %v", got, tt.state)
			}
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}
