package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

func TestRebalanceHandler_GetAllocation(t *testing.T) {
	setupHandler := func(t *testing.T) (*RebalanceHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewRebalanceHandler(testutil.NewTestRebalanceService(t, db)), db
	}

	t.Run("returns 404 when no plan is saved", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/allocation", nil)
		w := httptest.NewRecorder()

		handler.GetAllocation(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns the stored plan", func(t *testing.T) {
		handler, db := setupHandler(t)

		testutil.NewAllocationTarget("BTC").WithTargetPct(60).Build(t, db)
		testutil.NewAllocationTarget("ETH").WithTargetPct(40).Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/allocation", nil)
		w := httptest.NewRecorder()

		handler.GetAllocation(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.AllocationTarget
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Errorf("Expected 2 plan entries, got %d", len(response))
		}
	})
}

func TestRebalanceHandler_SaveAllocation(t *testing.T) {
	setupHandler := func(t *testing.T) (*RebalanceHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewRebalanceHandler(testutil.NewTestRebalanceService(t, db)), db
	}

	t.Run("saves a valid plan", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/portfolio/allocation",
			request.SaveAllocationPlanRequest{
				Targets: []request.AllocationTargetRequest{
					{Symbol: "BTC", TargetPct: 70},
					{Symbol: "ETH", TargetPct: 30},
				},
			})
		w := httptest.NewRecorder()

		handler.SaveAllocation(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 when percentages are out of tolerance", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/portfolio/allocation",
			request.SaveAllocationPlanRequest{
				Targets: []request.AllocationTargetRequest{
					{Symbol: "BTC", TargetPct: 70},
				},
			})
		w := httptest.NewRecorder()

		handler.SaveAllocation(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestRebalanceHandler_Rebalance(t *testing.T) {
	setupHandler := func(t *testing.T) (*RebalanceHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewRebalanceHandler(testutil.NewTestRebalanceService(t, db)), db
	}

	t.Run("returns 404 without a plan", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/rebalance", nil)
		w := httptest.NewRecorder()

		handler.Rebalance(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for a malformed capital parameter", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/rebalance",
			map[string]string{"capital": "lots"})
		w := httptest.NewRecorder()

		handler.Rebalance(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns suggestions for a stored plan", func(t *testing.T) {
		handler, db := setupHandler(t)

		testutil.CreateBuy(t, db, "BTC", 1, 300000)
		testutil.CreateBuy(t, db, "ETH", 10, 10000)
		testutil.CreateQuote(t, db, "BTC", 300000)
		testutil.CreateQuote(t, db, "ETH", 10000)
		testutil.NewAllocationTarget("BTC").WithTargetPct(50).Build(t, db)
		testutil.NewAllocationTarget("ETH").WithTargetPct(50).Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/rebalance", nil)
		w := httptest.NewRecorder()

		handler.Rebalance(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.RebalanceSuggestion
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Errorf("Expected 2 suggestions, got %d", len(response))
		}
	})
}

func TestRebalanceHandler_Simulate(t *testing.T) {
	setupHandler := func(t *testing.T) (*RebalanceHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewRebalanceHandler(testutil.NewTestRebalanceService(t, db)), db
	}

	t.Run("returns an empty series for an empty ledger", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio/rebalance/simulate",
			request.SimulateAllocationRequest{
				Targets: map[string]float64{"BTC": 100},
			})
		w := httptest.NewRecorder()

		handler.Simulate(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for negative percentages", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio/rebalance/simulate",
			request.SimulateAllocationRequest{
				Targets: map[string]float64{"BTC": -50},
			})
		w := httptest.NewRecorder()

		handler.Simulate(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
