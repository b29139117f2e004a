package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

// TestRespondJSON tests the respondJSON helper function.
// This is an internal test (package handlers, not handlers_test) because
// respondJSON is unexported.
func TestRespondJSON(t *testing.T) {
	t.Run("sets content-type and status code correctly", func(t *testing.T) {
		w := httptest.NewRecorder()
		data := map[string]string{"message": "success"}

		respondJSON(w, 200, data)

		if w.Code != 200 {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", w.Header().Get("Content-Type"))
		}
	})

	t.Run("handles nil data without error", func(t *testing.T) {
		w := httptest.NewRecorder()

		respondJSON(w, 204, nil)

		if w.Code != 204 {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
	})
}

func TestQueryInt(t *testing.T) {
	t.Run("returns fallback when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/tax", nil)

		value, err := queryInt(req, "year", 2024)
		if err != nil {
			t.Fatalf("queryInt() returned unexpected error: %v", err)
		}
		if value != 2024 {
			t.Errorf("Expected fallback 2024, got %d", value)
		}
	})

	t.Run("parses a present value", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/tax",
			map[string]string{"year": "2023"})

		value, err := queryInt(req, "year", 2024)
		if err != nil {
			t.Fatalf("queryInt() returned unexpected error: %v", err)
		}
		if value != 2023 {
			t.Errorf("Expected 2023, got %d", value)
		}
	})

	t.Run("rejects a malformed value", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/tax",
			map[string]string{"year": "soon"})

		if _, err := queryInt(req, "year", 2024); err == nil {
			t.Error("Expected error for malformed value, got nil")
		}
	})
}

func TestQueryFloat(t *testing.T) {
	t.Run("returns fallback when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/rebalance", nil)

		value, err := queryFloat(req, "capital", 0)
		if err != nil {
			t.Fatalf("queryFloat() returned unexpected error: %v", err)
		}
		if value != 0 {
			t.Errorf("Expected fallback 0, got %v", value)
		}
	})

	t.Run("parses negative values", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/rebalance",
			map[string]string{"capital": "-2500.50"})

		value, err := queryFloat(req, "capital", 0)
		if err != nil {
			t.Fatalf("queryFloat() returned unexpected error: %v", err)
		}
		if value != -2500.50 {
			t.Errorf("Expected -2500.50, got %v", value)
		}
	})
}
