package calc

import (
	"testing"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// TestComputeProfitAnalysis_AverageCostScenario is the canonical average
// cost example: buy 1 @ 100, buy 1 @ 300, sell 1 @ 500.
//
// WHY: this scenario pins down the three load-bearing conventions at once:
// the buy-only weighted average, realized profit against the average at
// sale time, and the average being untouched by the sell.
func TestComputeProfitAnalysis_AverageCostScenario(t *testing.T) {
	transactions := []model.Transaction{
		buy(t, "2024-01-01", "BTC", 1, 100),
		buy(t, "2024-01-02", "BTC", 1, 300),
		sell(t, "2024-01-03", "BTC", 1, 500),
	}

	analysis := ComputeProfitAnalysis(transactions, model.CurrentPriceMap{"BTC": quote(500)})

	if len(analysis) != 1 {
		t.Fatalf("expected 1 row, got %d", len(analysis))
	}
	row := analysis[0]

	if !almostEqual(row.AverageBuyPrice, 200) {
		t.Errorf("averageBuyPrice = %v, want 200", row.AverageBuyPrice)
	}
	if !almostEqual(row.TotalBought, 2) {
		t.Errorf("totalBought = %v, want 2", row.TotalBought)
	}
	if !almostEqual(row.RealizedProfit, 300) {
		t.Errorf("realizedProfit = %v, want (500-200)*1 = 300", row.RealizedProfit)
	}
	if !almostEqual(row.RemainingQuantity, 1) {
		t.Errorf("remainingQuantity = %v, want 1", row.RemainingQuantity)
	}
	// Unrealized on the remaining unit at 500 against average 200.
	if !almostEqual(row.UnrealizedProfit, 300) {
		t.Errorf("unrealizedProfit = %v, want 300", row.UnrealizedProfit)
	}
}

// TestComputeProfitAnalysis_ProfitDecomposition checks the invariant
// totalProfit == realized + unrealized over a mixed sequence.
func TestComputeProfitAnalysis_ProfitDecomposition(t *testing.T) {
	transactions := []model.Transaction{
		buy(t, "2024-01-01", "BTC", 2, 150),
		sell(t, "2024-02-01", "BTC", 0.5, 90),
		buy(t, "2024-03-01", "BTC", 1, 210),
		sell(t, "2024-04-01", "BTC", 1, 260),
		buy(t, "2024-05-01", "ETH", 5, 10000),
	}
	prices := model.CurrentPriceMap{"BTC": quote(240), "ETH": quote(9000)}

	for _, row := range ComputeProfitAnalysis(transactions, prices) {
		if !almostEqual(row.TotalProfit, row.RealizedProfit+row.UnrealizedProfit) {
			t.Errorf("%s: totalProfit %v != realized %v + unrealized %v",
				row.Symbol, row.TotalProfit, row.RealizedProfit, row.UnrealizedProfit)
		}
	}
}

// TestComputeProfitAnalysis_SellsNeverReduceAverage verifies that a fully
// liquidated and re-entered asset keeps its lifetime totals.
func TestComputeProfitAnalysis_SellsNeverReduceAverage(t *testing.T) {
	transactions := []model.Transaction{
		buy(t, "2024-01-01", "ADA", 100, 2),
		sell(t, "2024-02-01", "ADA", 100, 3),
		buy(t, "2024-03-01", "ADA", 100, 4),
	}

	analysis := ComputeProfitAnalysis(transactions, model.CurrentPriceMap{"ADA": quote(4)})

	row := analysis[0]
	if !almostEqual(row.TotalBought, 200) {
		t.Errorf("totalBought = %v, want lifetime 200", row.TotalBought)
	}
	if !almostEqual(row.TotalSold, 100) {
		t.Errorf("totalSold = %v, want 100", row.TotalSold)
	}
	// (2*100 + 4*100) / 200 = 3: the sell in between must not matter.
	if !almostEqual(row.AverageBuyPrice, 3) {
		t.Errorf("averageBuyPrice = %v, want 3", row.AverageBuyPrice)
	}
}

// TestComputeProfitMetrics exercises win rate bounds and best/worst
// selection.
func TestComputeProfitMetrics(t *testing.T) {
	t.Run("zero win rate when nothing ever sold", func(t *testing.T) {
		rows := []model.ProfitAnalysisData{
			{Symbol: "BTC", TotalProfit: 10},
			{Symbol: "ETH", TotalProfit: -5},
		}
		metrics := ComputeProfitMetrics(rows)
		if metrics.WinRate != 0 {
			t.Errorf("winRate = %v, want 0 with no sells", metrics.WinRate)
		}
		if metrics.TotalAssets != 2 {
			t.Errorf("totalAssets = %d, want 2", metrics.TotalAssets)
		}
	})

	t.Run("win rate counts only sold assets", func(t *testing.T) {
		rows := []model.ProfitAnalysisData{
			{Symbol: "BTC", TotalSold: 1, RealizedProfit: 100, TotalProfit: 100},
			{Symbol: "ETH", TotalSold: 1, RealizedProfit: -50, TotalProfit: -50},
			{Symbol: "SOL", TotalProfit: 999}, // never sold, excluded
		}
		metrics := ComputeProfitMetrics(rows)
		if !almostEqual(metrics.WinRate, 50) {
			t.Errorf("winRate = %v, want 50", metrics.WinRate)
		}
		if metrics.WinRate < 0 || metrics.WinRate > 100 {
			t.Errorf("winRate %v out of [0,100]", metrics.WinRate)
		}
	})

	t.Run("best and worst break ties on first row", func(t *testing.T) {
		rows := []model.ProfitAnalysisData{
			{Symbol: "A", TotalProfit: 10},
			{Symbol: "B", TotalProfit: 10},
			{Symbol: "C", TotalProfit: -10},
			{Symbol: "D", TotalProfit: -10},
		}
		metrics := ComputeProfitMetrics(rows)
		if metrics.BestAsset != "A" {
			t.Errorf("bestAsset = %s, want A (first encountered)", metrics.BestAsset)
		}
		if metrics.WorstAsset != "C" {
			t.Errorf("worstAsset = %s, want C (first encountered)", metrics.WorstAsset)
		}
	})

	t.Run("empty input yields zero metrics", func(t *testing.T) {
		metrics := ComputeProfitMetrics(nil)
		if metrics.TotalAssets != 0 || metrics.WinRate != 0 || metrics.BestAsset != "" {
			t.Errorf("expected zero metrics, got %+v", metrics)
		}
	})
}
