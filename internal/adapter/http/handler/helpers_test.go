package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseIntQuery(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want int
	}{
		{"present", "/api/transactions?limit=25", 25},
		{"missing", "/api/transactions", 50},
		{"garbage", "/api/transactions?limit=abc", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if got := parseIntQuery(r, "limit", 50); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestWriteError_ContentType(t *testing.T) {
	rec := httptest.NewRecorder()

	writeError(rec, http.StatusBadRequest, "bad input")

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
