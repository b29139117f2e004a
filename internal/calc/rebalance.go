package calc

import (
	"sort"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// ComputeRebalanceSuggestions computes the buy/sell orders that move the
// portfolio to the target allocation.
//
// Anchored symbols are carved out entirely: their value is removed from
// the total before percentages are computed and they never receive an
// order; they represent holdings kept at their current quantity. Locked
// symbols are the caller's concern (the caller pins their percentage
// before renormalizing the rest); here they are ordinary targets.
//
// Target percentages for non-anchored symbols are renormalized to cover
// 100% of the rebalanceable value: total value plus capitalChange minus
// anchored value. When that rebalanceable value is zero or negative (a
// withdrawal larger than the unanchored holdings) every non-anchored
// position is liquidated outright.
//
// Orders under ValueEpsilonFiat are omitted. Sells come before buys,
// each group ordered by descending amount.
func ComputeRebalanceSuggestions(
	performance []model.AssetPerformance,
	targets map[string]float64,
	prices model.CurrentPriceMap,
	capitalChange float64,
	anchored map[string]bool,
) []model.RebalanceSuggestion {

	perfBySymbol := make(map[string]model.AssetPerformance, len(performance))
	var totalValue, anchoredValue float64
	for _, row := range performance {
		perfBySymbol[row.Symbol] = row
		totalValue += row.CurrentValue
		if anchored[row.Symbol] {
			anchoredValue += row.CurrentValue
		}
	}

	// Union of held and targeted symbols, held first (input order), then
	// new targets in sorted order for a reproducible result.
	symbols := []string{}
	for _, row := range performance {
		if !anchored[row.Symbol] {
			symbols = append(symbols, row.Symbol)
		}
	}
	extra := []string{}
	for symbol := range targets {
		if _, held := perfBySymbol[symbol]; !held && !anchored[symbol] {
			extra = append(extra, symbol)
		}
	}
	sort.Strings(extra)
	symbols = append(symbols, extra...)

	unanchoredValue := totalValue - anchoredValue
	rebalanceable := unanchoredValue + capitalChange

	if rebalanceable <= 0 {
		return liquidationOrders(symbols, perfBySymbol, unanchoredValue)
	}

	targetSum := 0.0
	for _, symbol := range symbols {
		targetSum += targets[symbol]
	}

	suggestions := []model.RebalanceSuggestion{}
	for _, symbol := range symbols {
		row := perfBySymbol[symbol]

		share := 0.0
		if targetSum > 0 {
			share = targets[symbol] / targetSum
		}
		targetValue := rebalanceable * share
		difference := targetValue - row.CurrentValue
		if difference < ValueEpsilonFiat && difference > -ValueEpsilonFiat {
			continue
		}

		action := model.RebalanceBuy
		amount := difference
		if difference < 0 {
			action = model.RebalanceSell
			amount = -difference
		}

		unitPrice := prices[symbol].Price
		if row.TotalQuantity > QuantityEpsilon {
			unitPrice = row.CurrentValue / row.TotalQuantity
		}
		quantity := 0.0
		if unitPrice > 0 {
			quantity = amount / unitPrice
		}

		currentAllocation := 0.0
		if unanchoredValue > 0 {
			currentAllocation = row.CurrentValue / unanchoredValue * 100
		}

		suggestions = append(suggestions, model.RebalanceSuggestion{
			Symbol:            symbol,
			Action:            action,
			AmountBRL:         amount,
			Quantity:          quantity,
			CurrentValue:      row.CurrentValue,
			TargetValue:       targetValue,
			CurrentAllocation: currentAllocation,
			TargetAllocation:  share * 100,
		})
	}

	sortSuggestions(suggestions)
	return suggestions
}

// liquidationOrders emits a full sell for every non-anchored held position.
func liquidationOrders(symbols []string, perfBySymbol map[string]model.AssetPerformance, unanchoredValue float64) []model.RebalanceSuggestion {
	suggestions := []model.RebalanceSuggestion{}
	for _, symbol := range symbols {
		row, held := perfBySymbol[symbol]
		if !held || row.CurrentValue < ValueEpsilonFiat {
			continue
		}
		currentAllocation := 0.0
		if unanchoredValue > 0 {
			currentAllocation = row.CurrentValue / unanchoredValue * 100
		}
		suggestions = append(suggestions, model.RebalanceSuggestion{
			Symbol:            symbol,
			Action:            model.RebalanceSell,
			AmountBRL:         row.CurrentValue,
			Quantity:          row.TotalQuantity,
			CurrentValue:      row.CurrentValue,
			TargetValue:       0,
			CurrentAllocation: currentAllocation,
			TargetAllocation:  0,
		})
	}
	sortSuggestions(suggestions)
	return suggestions
}

// sortSuggestions orders sells before buys, then by descending amount
// within each group. The sort is stable so equal amounts keep their
// symbol order.
func sortSuggestions(suggestions []model.RebalanceSuggestion) {
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Action != suggestions[j].Action {
			return suggestions[i].Action == model.RebalanceSell
		}
		return suggestions[i].AmountBRL > suggestions[j].AmountBRL
	})
}
