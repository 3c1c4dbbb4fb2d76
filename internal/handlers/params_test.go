package handlers

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestGetParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/listing/42?:id=42", nil)
	if got := getParam(r, "id"); got != "42" {
		t.Fatalf("expected 42, got %q", got)
	}

	r = httptest.NewRequest("GET", "/listing?id=7", nil)
	if got := getParam(r, "id"); got != "7" {
		t.Fatalf("expected 7, got %q", got)
	}

	r = httptest.NewRequest("GET", "/listing", nil)
	if got := getParam(r, "id"); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}

	if got := getParam(nil, "id"); got != "" {
		t.Fatalf("expected empty string for nil request, got %q", got)
	}
}

func TestParseFloatQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/listing/search?min_price=12.5&min_abv=abc", nil)
	if got := parseFloatQuery(r, "min_price"); got != 12.5 {
		t.Fatalf("expected 12.5, got %v", got)
	}
	if got := parseFloatQuery(r, "min_abv"); got != 0 {
		t.Fatalf("expected 0 for invalid value, got %v", got)
	}
	if got := parseFloatQuery(r, "missing"); got != 0 {
		t.Fatalf("expected 0 for missing value, got %v", got)
	}
}

func TestParseIntQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/listing/search?page=3&limit=x", nil)
	if got := parseIntQuery(r, "page"); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
	if got := parseIntQuery(r, "limit"); got != 0 {
		t.Fatalf("expected 0 for invalid value, got %v", got)
	}
}

func TestCurrentUserID(t *testing.T) {
	r := httptest.NewRequest("POST", "/review", nil)
	if _, ok := currentUserID(r); ok {
		t.Fatal("expected no user id on bare request")
	}

	r = r.WithContext(context.WithValue(r.Context(), "user_id", 15))
	id, ok := currentUserID(r)
	if !ok || id != 15 {
		t.Fatalf("expected user id 15, got %v ok=%v", id, ok)
	}
}
