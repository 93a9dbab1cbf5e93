// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package store

import (
	"context"
	"errors"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/kestrelworks/tradrank/internal/ranking"
)

// flakyModeration fails every call until healed.
type flakyModeration struct {
	failing bool
	calls   int
}

func (f *flakyModeration) Status(_ context.Context, productID string) (ranking.ModerationStatus, error) {
	f.calls++
	if f.failing {
		return ranking.ModerationStatus{}, errors.New("moderation store down")
	}
	return ranking.ModerationStatus{ReferenceID: productID}, nil
}

func (f *flakyModeration) StatusesByProductIDs(_ context.Context, ids []string) (map[string]ranking.ModerationStatus, error) {
	f.calls++
	if f.failing {
		return nil, errors.New("moderation store down")
	}
	out := make(map[string]ranking.ModerationStatus, len(ids))
	for _, id := range ids {
		out[id] = ranking.ModerationStatus{ReferenceID: id}
	}
	return out, nil
}

func (f *flakyModeration) UnresolvedReportCount(_ context.Context, _ string) (int, error) {
	f.calls++
	if f.failing {
		return 0, errors.New("moderation store down")
	}
	return 0, nil
}

func TestBreakerPassesThroughSuccess(t *testing.T) {
	inner := &flakyModeration{}
	wrapped := NewBreakerModeration(inner)

	statuses, err := wrapped.StatusesByProductIDs(context.Background(), []string{"prod_a"})
	if err != nil {
		t.Fatalf("StatusesByProductIDs() error = %v", err)
	}
	if len(statuses) != 1 || statuses["prod_a"].ReferenceID != "prod_a" {
		t.Errorf("unexpected statuses: %v", statuses)
	}
}

func TestBreakerPropagatesErrors(t *testing.T) {
	inner := &flakyModeration{failing: true}
	wrapped := NewBreakerModeration(inner)

	if _, err := wrapped.Status(context.Background(), "prod_a"); err == nil {
		t.Fatal("expected error from failing inner provider")
	}
}

func TestBreakerOpensAfterFailureRate(t *testing.T) {
	inner := &flakyModeration{failing: true}
	wrapped := NewBreakerModeration(inner)

	// Drive enough failures to trip the 60%/10-request policy.
	for i := 0; i < 12; i++ {
		_, _ = wrapped.Status(context.Background(), "prod_a")
	}

	callsBefore := inner.calls
	_, err := wrapped.Status(context.Background(), "prod_a")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected ErrOpenState after repeated failures, got %v", err)
	}
	if inner.calls != callsBefore {
		t.Error("open breaker should not reach the inner provider")
	}
}

func TestBreakerStaysClosedUnderThreshold(t *testing.T) {
	inner := &flakyModeration{failing: true}
	wrapped := NewBreakerModeration(inner)

	// Fewer than 10 requests never trips regardless of failure rate.
	for i := 0; i < 5; i++ {
		_, _ = wrapped.Status(context.Background(), "prod_a")
	}

	inner.failing = false
	if _, err := wrapped.Status(context.Background(), "prod_a"); err != nil {
		t.Errorf("breaker should still be closed, got %v", err)
	}
}
