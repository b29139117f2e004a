package calc

import (
	"testing"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// TestComputePerformance_CostBasisConservation verifies that with no sells
// the cost basis is exactly the sum of quantity*unitPrice per asset.
//
// WHY: cost basis conservation is the foundation every other figure builds
// on; any drift here propagates into profit, history, and tax output.
func TestComputePerformance_CostBasisConservation(t *testing.T) {
	transactions := []model.Transaction{
		buy(t, "2024-01-10", "BTC", 0.5, 200000),
		buy(t, "2024-02-15", "BTC", 0.25, 240000),
		buy(t, "2024-03-01", "ETH", 10, 12000),
	}
	prices := model.CurrentPriceMap{"BTC": quote(300000), "ETH": quote(15000)}

	performance := ComputePerformance(transactions, prices)

	if len(performance) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(performance))
	}

	btc := performance[0]
	if btc.Symbol != "BTC" {
		t.Fatalf("expected BTC first (input order), got %s", btc.Symbol)
	}
	wantInvested := 0.5*200000 + 0.25*240000
	if btc.TotalInvested != wantInvested {
		t.Errorf("BTC invested = %v, want exactly %v", btc.TotalInvested, wantInvested)
	}
	if !almostEqual(btc.TotalQuantity, 0.75) {
		t.Errorf("BTC quantity = %v, want 0.75", btc.TotalQuantity)
	}
	if !almostEqual(btc.CurrentValue, 0.75*300000) {
		t.Errorf("BTC current value = %v, want %v", btc.CurrentValue, 0.75*300000)
	}
}

// TestComputePerformance_SellRemovesProportionalCost verifies the weighted
// average cost rule: a sell removes quantity times the running average
// cost, not the sell price.
func TestComputePerformance_SellRemovesProportionalCost(t *testing.T) {
	transactions := []model.Transaction{
		buy(t, "2024-01-01", "BTC", 1, 100),
		buy(t, "2024-01-02", "BTC", 1, 300),
		sell(t, "2024-01-03", "BTC", 1, 500),
	}

	performance := ComputePerformance(transactions, model.CurrentPriceMap{"BTC": quote(500)})

	if len(performance) != 1 {
		t.Fatalf("expected 1 row, got %d", len(performance))
	}
	row := performance[0]
	// Average cost before the sell is 200, so 200 leaves the basis.
	if !almostEqual(row.TotalInvested, 200) {
		t.Errorf("invested after sell = %v, want 200", row.TotalInvested)
	}
	if !almostEqual(row.TotalQuantity, 1) {
		t.Errorf("quantity after sell = %v, want 1", row.TotalQuantity)
	}
}

// TestComputePerformance_LiquidationZeroing verifies that selling the
// exact held quantity snaps both quantity and invested to zero and drops
// the asset from the output.
func TestComputePerformance_LiquidationZeroing(t *testing.T) {
	tests := []struct {
		name         string
		transactions func(t *testing.T) []model.Transaction
	}{
		{
			name: "single buy fully sold",
			transactions: func(t *testing.T) []model.Transaction {
				return []model.Transaction{
					buy(t, "2024-01-01", "SOL", 3, 700),
					sell(t, "2024-01-05", "SOL", 3, 800),
				}
			},
		},
		{
			name: "fractional quantities with intervening trades",
			transactions: func(t *testing.T) []model.Transaction {
				return []model.Transaction{
					buy(t, "2024-01-01", "SOL", 0.1, 700),
					buy(t, "2024-01-02", "SOL", 0.2, 710),
					sell(t, "2024-01-03", "SOL", 0.15, 750),
					buy(t, "2024-01-04", "SOL", 0.05, 720),
					sell(t, "2024-01-05", "SOL", 0.2, 760),
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			performance := ComputePerformance(tt.transactions(t), model.CurrentPriceMap{"SOL": quote(800)})
			if len(performance) != 0 {
				t.Errorf("expected fully sold asset to be omitted, got %+v", performance)
			}
		})
	}
}

// TestComputePerformance_OversellClampsToZero verifies the defensive clamp:
// selling more than held never produces negative holdings.
func TestComputePerformance_OversellClampsToZero(t *testing.T) {
	transactions := []model.Transaction{
		buy(t, "2024-01-01", "BTC", 1, 100),
		sell(t, "2024-01-02", "BTC", 2, 150),
		buy(t, "2024-01-03", "BTC", 1, 120),
	}

	performance := ComputePerformance(transactions, model.CurrentPriceMap{"BTC": quote(150)})

	if len(performance) != 1 {
		t.Fatalf("expected 1 row, got %d", len(performance))
	}
	if performance[0].TotalQuantity != 1 || performance[0].TotalInvested != 120 {
		t.Errorf("expected position rebuilt from clean zero, got qty=%v invested=%v",
			performance[0].TotalQuantity, performance[0].TotalInvested)
	}
}

// TestComputePerformance_MissingQuote verifies that a symbol absent from
// the price map is valued at zero instead of erroring out: stale or
// partial price maps are a normal input.
func TestComputePerformance_MissingQuote(t *testing.T) {
	transactions := []model.Transaction{
		buy(t, "2024-01-01", "DOGE", 1000, 0.5),
	}

	performance := ComputePerformance(transactions, model.CurrentPriceMap{})

	if len(performance) != 1 {
		t.Fatalf("expected 1 row, got %d", len(performance))
	}
	row := performance[0]
	if row.CurrentValue != 0 {
		t.Errorf("current value = %v, want 0 for missing quote", row.CurrentValue)
	}
	if !almostEqual(row.ProfitLoss, -500) {
		t.Errorf("profit/loss = %v, want -500", row.ProfitLoss)
	}
	if !almostEqual(row.Variation, -100) {
		t.Errorf("variation = %v, want -100", row.Variation)
	}
}

// TestComputePerformance_UnsortedInput verifies that calculation order
// does not depend on input order; transactions arrive from the API in
// arbitrary order.
func TestComputePerformance_UnsortedInput(t *testing.T) {
	transactions := []model.Transaction{
		sell(t, "2024-03-01", "BTC", 1, 500),
		buy(t, "2024-01-02", "BTC", 1, 300),
		buy(t, "2024-01-01", "BTC", 1, 100),
	}

	performance := ComputePerformance(transactions, model.CurrentPriceMap{"BTC": quote(500)})

	if len(performance) != 1 {
		t.Fatalf("expected 1 row, got %d", len(performance))
	}
	if !almostEqual(performance[0].TotalInvested, 200) {
		t.Errorf("invested = %v, want 200 (sorted replay)", performance[0].TotalInvested)
	}
}
