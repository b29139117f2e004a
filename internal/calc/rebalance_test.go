package calc

import (
	"testing"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func holding(symbol string, value, quantity float64) model.AssetPerformance {
	return model.AssetPerformance{
		Symbol:        symbol,
		CurrentValue:  value,
		TotalQuantity: quantity,
		TotalInvested: value,
	}
}

// TestComputeRebalanceSuggestions_Idempotence verifies that a portfolio
// already at target produces no orders.
func TestComputeRebalanceSuggestions_Idempotence(t *testing.T) {
	performance := []model.AssetPerformance{
		holding("BTC", 500, 1),
		holding("ETH", 500, 10),
	}
	targets := map[string]float64{"BTC": 50, "ETH": 50}

	suggestions := ComputeRebalanceSuggestions(performance, targets, model.CurrentPriceMap{}, 0, nil)

	if len(suggestions) != 0 {
		t.Errorf("expected no orders at target, got %+v", suggestions)
	}
}

// TestComputeRebalanceSuggestions_CapitalInjection is the scenario from
// the drawing board: {A:100, B:0} worth 100, target 50/50, inject 100.
// A stays put, B gets the whole injection.
func TestComputeRebalanceSuggestions_CapitalInjection(t *testing.T) {
	performance := []model.AssetPerformance{
		holding("A", 100, 1),
	}
	targets := map[string]float64{"A": 50, "B": 50}
	prices := model.CurrentPriceMap{"B": quote(10)}

	suggestions := ComputeRebalanceSuggestions(performance, targets, prices, 100, nil)

	if len(suggestions) != 1 {
		t.Fatalf("expected only a buy for B, got %+v", suggestions)
	}
	order := suggestions[0]
	if order.Symbol != "B" || order.Action != model.RebalanceBuy {
		t.Fatalf("unexpected order %+v", order)
	}
	if !almostEqual(order.AmountBRL, 100) {
		t.Errorf("amount = %v, want 100", order.AmountBRL)
	}
	if !almostEqual(order.TargetValue, 100) {
		t.Errorf("targetValue = %v, want 100", order.TargetValue)
	}
	if !almostEqual(order.Quantity, 10) {
		t.Errorf("quantity = %v, want 10 units at live price", order.Quantity)
	}
}

// TestComputeRebalanceSuggestions_AnchoredExclusion verifies anchored
// assets never appear in the output and their value is carved out of the
// percentage math.
func TestComputeRebalanceSuggestions_AnchoredExclusion(t *testing.T) {
	performance := []model.AssetPerformance{
		holding("BTC", 1000, 1), // anchored, badly off target
		holding("ETH", 100, 10),
		holding("SOL", 300, 30),
	}
	targets := map[string]float64{"ETH": 50, "SOL": 50}
	anchored := map[string]bool{"BTC": true}

	suggestions := ComputeRebalanceSuggestions(performance, targets, model.CurrentPriceMap{}, 0, anchored)

	for _, order := range suggestions {
		if order.Symbol == "BTC" {
			t.Fatalf("anchored asset received an order: %+v", order)
		}
	}
	// Rebalanceable value is 400: ETH buys 100, SOL sells 100.
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 orders, got %+v", suggestions)
	}
	if suggestions[0].Action != model.RebalanceSell || suggestions[0].Symbol != "SOL" {
		t.Errorf("first order = %+v, want SOL sell (sells before buys)", suggestions[0])
	}
	if !almostEqual(suggestions[0].AmountBRL, 100) || !almostEqual(suggestions[1].AmountBRL, 100) {
		t.Errorf("amounts = %v/%v, want 100/100", suggestions[0].AmountBRL, suggestions[1].AmountBRL)
	}
}

// TestComputeRebalanceSuggestions_TargetRenormalization verifies targets
// that do not sum to 100 are scaled over the rebalanceable portion.
func TestComputeRebalanceSuggestions_TargetRenormalization(t *testing.T) {
	performance := []model.AssetPerformance{
		holding("BTC", 300, 1),
		holding("ETH", 100, 10),
	}
	// Sums to 60: shares become 2/3 and 1/3.
	targets := map[string]float64{"BTC": 40, "ETH": 20}

	suggestions := ComputeRebalanceSuggestions(performance, targets, model.CurrentPriceMap{}, 0, nil)

	byFn := make(map[string]model.RebalanceSuggestion)
	for _, order := range suggestions {
		byFn[order.Symbol] = order
	}
	// Target values: BTC 266.67 (sell ~33), ETH 133.33 (buy ~33).
	if order, ok := byFn["BTC"]; !ok || order.Action != model.RebalanceSell {
		t.Errorf("expected BTC sell, got %+v", order)
	}
	if order, ok := byFn["ETH"]; !ok || !almostEqual(order.TargetAllocation, 100.0/3) {
		t.Errorf("ETH targetAllocation = %v, want 33.33", order.TargetAllocation)
	}
}

// TestComputeRebalanceSuggestions_WithdrawalLiquidation verifies a
// withdrawal larger than the unanchored value liquidates every position.
func TestComputeRebalanceSuggestions_WithdrawalLiquidation(t *testing.T) {
	performance := []model.AssetPerformance{
		holding("BTC", 300, 1),
		holding("ETH", 100, 10),
	}
	targets := map[string]float64{"BTC": 50, "ETH": 50}

	suggestions := ComputeRebalanceSuggestions(performance, targets, model.CurrentPriceMap{}, -500, nil)

	if len(suggestions) != 2 {
		t.Fatalf("expected full liquidation of both assets, got %+v", suggestions)
	}
	for _, order := range suggestions {
		if order.Action != model.RebalanceSell {
			t.Errorf("expected sell, got %+v", order)
		}
		if order.TargetValue != 0 {
			t.Errorf("targetValue = %v, want 0", order.TargetValue)
		}
	}
	// Descending by amount: BTC 300 before ETH 100.
	if suggestions[0].Symbol != "BTC" {
		t.Errorf("expected BTC first by amount, got %s", suggestions[0].Symbol)
	}
	if !almostEqual(suggestions[0].Quantity, 1) {
		t.Errorf("BTC quantity = %v, want full position", suggestions[0].Quantity)
	}
}

// TestComputeRebalanceSuggestions_SellsBeforeBuysDescending pins the
// output ordering contract.
func TestComputeRebalanceSuggestions_SellsBeforeBuysDescending(t *testing.T) {
	performance := []model.AssetPerformance{
		holding("A", 400, 4),
		holding("B", 300, 3),
		holding("C", 200, 2),
		holding("D", 100, 1),
	}
	targets := map[string]float64{"A": 25, "B": 25, "C": 25, "D": 25}

	suggestions := ComputeRebalanceSuggestions(performance, targets, model.CurrentPriceMap{}, 0, nil)

	if len(suggestions) != 4 {
		t.Fatalf("expected 4 orders, got %d", len(suggestions))
	}
	wantOrder := []string{"A", "B", "D", "C"} // sells 150,50 then buys 150,50
	for i, symbol := range wantOrder {
		if suggestions[i].Symbol != symbol {
			t.Errorf("position %d = %s, want %s", i, suggestions[i].Symbol, symbol)
		}
	}
	if suggestions[0].Action != model.RebalanceSell || suggestions[3].Action != model.RebalanceBuy {
		t.Errorf("ordering contract broken: %+v", suggestions)
	}
}
