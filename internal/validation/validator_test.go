// TradRank - Marketplace Product Discovery and Ranking
// Copyright 2026 Kestrel Works
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kestrelworks/tradrank

package validation

import (
	"strings"
	"testing"
)

type rankingsRequest struct {
	Category string `validate:"omitempty,slug,max=64"`
	SellerID string `validate:"omitempty,entityid,max=64"`
	Limit    int    `validate:"min=0,max=1000"`
}

func TestValidateStructPasses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  rankingsRequest
	}{
		{name: "empty request", req: rankingsRequest{}},
		{name: "full request", req: rankingsRequest{Category: "vintage-audio", SellerID: "sel_1234", Limit: 50}},
		{name: "single word slug", req: rankingsRequest{Category: "ceramics"}},
		{name: "numeric slug", req: rankingsRequest{Category: "35mm-film"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := ValidateStruct(&tt.req); err != nil {
				t.Errorf("ValidateStruct(%+v) = %v, want nil", tt.req, err)
			}
		})
	}
}

func TestValidateStructFails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       rankingsRequest
		wantField string
		wantTag   string
	}{
		{name: "uppercase slug", req: rankingsRequest{Category: "Vintage"}, wantField: "Category", wantTag: "slug"},
		{name: "spaced slug", req: rankingsRequest{Category: "vintage audio"}, wantField: "Category", wantTag: "slug"},
		{name: "trailing hyphen", req: rankingsRequest{Category: "audio-"}, wantField: "Category", wantTag: "slug"},
		{name: "seller id with spaces", req: rankingsRequest{SellerID: "sel 1"}, wantField: "SellerID", wantTag: "entityid"},
		{name: "seller id leading dash", req: rankingsRequest{SellerID: "-abc"}, wantField: "SellerID", wantTag: "entityid"},
		{name: "negative limit", req: rankingsRequest{Limit: -1}, wantField: "Limit", wantTag: "min"},
		{name: "limit too large", req: rankingsRequest{Limit: 5000}, wantField: "Limit", wantTag: "max"},
		{name: "category too long", req: rankingsRequest{Category: strings.Repeat("a", 65)}, wantField: "Category", wantTag: "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&tt.req)
			if err == nil {
				t.Fatalf("ValidateStruct(%+v) = nil, want error", tt.req)
			}

			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("expected 1 validation error, got %d: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
		})
	}
}

func TestToAPIErrorSingle(t *testing.T) {
	t.Parallel()

	req := rankingsRequest{Category: "Bad Slug"}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "Category") {
		t.Errorf("Message = %q, want field name included", apiErr.Message)
	}
	if apiErr.Details["field"] != "Category" {
		t.Errorf("Details[field] = %v, want Category", apiErr.Details["field"])
	}
}

func TestToAPIErrorMultiple(t *testing.T) {
	t.Parallel()

	req := rankingsRequest{Category: "Bad Slug", Limit: -5}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}

	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Details[fields] has wrong type: %T", apiErr.Details["fields"])
	}
	if len(fields) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(fields))
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() returned different instances")
	}
}

func TestTranslateMessages(t *testing.T) {
	t.Parallel()

	req := rankingsRequest{Limit: 5000}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation error")
	}

	if got := err.Error(); !strings.Contains(got, "must be at most 1000") {
		t.Errorf("Error() = %q, want max message", got)
	}
}
