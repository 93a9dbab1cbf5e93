// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/kestrelworks/tradrank/internal/logging"
	"github.com/kestrelworks/tradrank/internal/ranking"
)

// Ranker is the engine surface the handlers depend on. Tests substitute a
// fake; production wires *ranking.Engine.
type Ranker interface {
	RankProducts(ctx context.Context, req ranking.Request) ([]ranking.RankedProduct, error)
}

// SlotLister exposes the ad-slot overrides for the slots endpoint.
type SlotLister interface {
	AdSlotOverrides(ctx context.Context) ([]ranking.AdSlotOverride, error)
}

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	ranker Ranker
	slots  SlotLister
	db     *sql.DB
}

// NewHandlers creates the handler set. db may be nil in tests; the readiness
// probe then reports ready unconditionally.
func NewHandlers(ranker Ranker, slots SlotLister, db *sql.DB) *Handlers {
	return &Handlers{ranker: ranker, slots: slots, db: db}
}

// rankingsQuery is the validated query-string form of a ranking request.
type rankingsQuery struct {
	Category string `validate:"omitempty,slug,max=64"`
	SellerID string `validate:"omitempty,entityid,max=64"`
	Query    string `validate:"omitempty,max=128"`
	Limit    int    `validate:"min=0,max=1000"`
}

// Rankings handles GET /api/v1/rankings.
//
// Query parameters: category, seller_id, q, limit. The optional X-User-ID
// header personalizes results; absent means anonymous.
func (h *Handlers) Rankings(w http.ResponseWriter, r *http.Request) {
	q := rankingsQuery{
		Category: r.URL.Query().Get("category"),
		SellerID: r.URL.Query().Get("seller_id"),
		Query:    r.URL.Query().Get("q"),
		Limit:    getIntParam(r, "limit", 0),
	}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	req := ranking.Request{
		UserID:    r.Header.Get("X-User-ID"),
		Limit:     q.Limit,
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
	if q.Category != "" || q.SellerID != "" || q.Query != "" {
		req.Filter = &ranking.QuerySpec{
			Category:  q.Category,
			SellerID:  q.SellerID,
			NameQuery: q.Query,
		}
	}

	start := time.Now()
	ranked, err := h.ranker.RankProducts(r.Context(), req)
	if err != nil {
		h.respondRankingError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"products": ranked,
			"count":    len(ranked),
		},
		Metadata: Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			RequestID:   req.RequestID,
		},
	})
}

// respondRankingError maps engine errors to HTTP statuses: invalid filters
// are the caller's fault (400), missing mandatory data is retryable (503
// with Retry-After), everything else is a 500.
func (h *Handlers) respondRankingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ranking.ErrInvalidFilter):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case ranking.IsRetryable(err):
		w.Header().Set("Retry-After", "5")
		respondError(w, http.StatusServiceUnavailable, "RANKING_UNAVAILABLE",
			"Ranking temporarily unavailable, retry shortly", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusServiceUnavailable, "RANKING_UNAVAILABLE",
			"Ranking timed out", err)
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"Internal server error", err)
	}
}

// slotView is the wire form of an ad-slot override.
type slotView struct {
	SlotID         string     `json:"slot_id"`
	EntityType     string     `json:"entity_type"`
	PinnedEntityID string     `json:"pinned_entity_id,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	Active         bool       `json:"active"`
}

// Slots handles GET /api/v1/rankings/slots, exposing the configured ad-slot
// overrides for admin tooling. Includes vacant and expired slots with an
// explicit active flag.
func (h *Handlers) Slots(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	overrides, err := h.slots.AdSlotOverrides(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "SLOTS_UNAVAILABLE",
			"Slot configuration temporarily unavailable", err)
		return
	}

	now := time.Now()
	views := make([]slotView, 0, len(overrides))
	for _, o := range overrides {
		view := slotView{
			SlotID:         o.SlotID,
			EntityType:     o.EntityType.String(),
			PinnedEntityID: o.PinnedEntityID,
			Active:         o.Active(now),
		}
		if !o.ExpiresAt.IsZero() {
			expires := o.ExpiresAt
			view.ExpiresAt = &expires
		}
		views = append(views, view)
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"slots": views,
			"count": len(views),
		},
		Metadata: Metadata{
			Timestamp:   now,
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// HealthLive handles GET /api/v1/health/live. Always succeeds while the
// process serves traffic.
func (h *Handlers) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &APIResponse{
		Status:   "success",
		Data:     map[string]string{"state": "alive"},
		Metadata: Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles GET /api/v1/health/ready. Ready means the mandatory
// read model answers a ping.
func (h *Handlers) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			respondError(w, http.StatusServiceUnavailable, "NOT_READY",
				"Read model unavailable", err)
			return
		}
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status:   "success",
		Data:     map[string]string{"state": "ready"},
		Metadata: Metadata{Timestamp: time.Now()},
	})
}
