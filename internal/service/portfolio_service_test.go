package service_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

// TestPortfolioService_GetPerformance tests position aggregation end to end.
//
// WHY: This is the wiring test for the whole read path: ledger rows and
// cached quotes come out of SQLite and must land in the calculation engine
// unchanged. The arithmetic itself is covered in the calc package.
func TestPortfolioService_GetPerformance(t *testing.T) {
	t.Run("returns empty slice for empty ledger", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		// Execute
		performance, err := svc.GetPerformance()

		// Assert
		if err != nil {
			t.Fatalf("GetPerformance() returned unexpected error: %v", err)
		}
		if len(performance) != 0 {
			t.Errorf("Expected empty performance, got %d rows", len(performance))
		}
	})

	t.Run("values held positions at cached quotes", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		testutil.CreateBuy(t, db, "BTC", 0.5, 200000)
		testutil.CreateBuy(t, db, "ETH", 2, 10000)
		testutil.CreateQuote(t, db, "BTC", 300000)
		testutil.CreateQuote(t, db, "ETH", 12000)

		// Execute
		performance, err := svc.GetPerformance()

		// Assert
		if err != nil {
			t.Fatalf("GetPerformance() returned unexpected error: %v", err)
		}
		if len(performance) != 2 {
			t.Fatalf("Expected 2 positions, got %d", len(performance))
		}

		for _, position := range performance {
			switch position.Symbol {
			case "BTC":
				if math.Abs(position.TotalInvested-100000) > 0.01 {
					t.Errorf("BTC invested = %v, want 100000", position.TotalInvested)
				}
				if math.Abs(position.CurrentValue-150000) > 0.01 {
					t.Errorf("BTC current value = %v, want 150000", position.CurrentValue)
				}
			case "ETH":
				if math.Abs(position.TotalInvested-20000) > 0.01 {
					t.Errorf("ETH invested = %v, want 20000", position.TotalInvested)
				}
				if math.Abs(position.CurrentValue-24000) > 0.01 {
					t.Errorf("ETH current value = %v, want 24000", position.CurrentValue)
				}
			default:
				t.Errorf("Unexpected symbol %s in performance", position.Symbol)
			}
		}
	})

	t.Run("omits fully liquidated assets", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		testutil.NewTransaction().
			WithAsset("SOL").
			WithQuantity(10).
			WithUnitPrice(500).
			WithDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).
			Build(t, db)
		testutil.NewTransaction().
			WithType("sell").
			WithAsset("SOL").
			WithQuantity(10).
			WithUnitPrice(700).
			WithDate(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).
			Build(t, db)

		// Execute
		performance, err := svc.GetPerformance()

		// Assert
		if err != nil {
			t.Fatalf("GetPerformance() returned unexpected error: %v", err)
		}
		if len(performance) != 0 {
			t.Errorf("Expected liquidated asset to be omitted, got %d rows", len(performance))
		}
	})
}

// TestPortfolioService_GetProfitMetrics tests the aggregate metrics path.
func TestPortfolioService_GetProfitMetrics(t *testing.T) {
	t.Run("identifies best and worst assets", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		testutil.CreateBuy(t, db, "BTC", 1, 100000)
		testutil.CreateBuy(t, db, "ETH", 1, 10000)
		testutil.CreateQuote(t, db, "BTC", 150000) // +50%
		testutil.CreateQuote(t, db, "ETH", 8000)   // -20%

		// Execute
		metrics, err := svc.GetProfitMetrics()

		// Assert
		if err != nil {
			t.Fatalf("GetProfitMetrics() returned unexpected error: %v", err)
		}

		if metrics.BestAsset != "BTC" {
			t.Errorf("Best asset = %s, want BTC", metrics.BestAsset)
		}
		if metrics.WorstAsset != "ETH" {
			t.Errorf("Worst asset = %s, want ETH", metrics.WorstAsset)
		}
	})
}

// TestPortfolioService_GetAssetHistory tests the single-asset series.
func TestPortfolioService_GetAssetHistory(t *testing.T) {
	t.Run("returns ErrTransactionNotFound for unknown asset", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		testutil.CreateBuy(t, db, "BTC", 1, 100000)

		// Execute
		_, err := svc.GetAssetHistory("DOGE")

		// Assert
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("builds a daily series from the first transaction", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		start := time.Now().UTC().AddDate(0, 0, -3)
		testutil.NewTransaction().
			WithAsset("BTC").
			WithQuantity(1).
			WithUnitPrice(200000).
			WithDate(start).
			Build(t, db)
		testutil.CreateHistoricalPrice(t, db, "BTC", start.Format("2006-01-02"), 200000)
		testutil.CreateQuote(t, db, "BTC", 250000)

		// Execute
		history, err := svc.GetAssetHistory("BTC")

		// Assert
		if err != nil {
			t.Fatalf("GetAssetHistory() returned unexpected error: %v", err)
		}

		// Synthetic zero anchor plus one point per day
		if len(history) != 5 {
			t.Fatalf("Expected 5 points, got %d", len(history))
		}
		if history[0].MarketValue != 0 || history[0].InvestedValue != 0 {
			t.Errorf("Expected zero anchor point, got %+v", history[0])
		}
		if history[1].Date != start.Format("2006-01-02") {
			t.Errorf("Series starts at %s, want %s", history[1].Date, start.Format("2006-01-02"))
		}

		// The final day is valued at the live quote
		last := history[len(history)-1]
		if math.Abs(last.MarketValue-250000) > 0.01 {
			t.Errorf("Final market value = %v, want 250000", last.MarketValue)
		}
	})
}
