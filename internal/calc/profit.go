package calc

import (
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// profitState is the lifetime bookkeeping for one asset. TotalBought and
// totalSold only ever grow, so averages stay comparable across full
// liquidation and re-entry.
type profitState struct {
	totalBought     float64
	totalSold       float64
	averageBuyPrice float64
	realizedProfit  float64
}

// ComputeProfitAnalysis produces one ProfitAnalysisData row per asset that
// ever appeared in the ledger, in order of first appearance.
//
// This intentionally keeps separate books from ComputePerformance: the
// average buy price here is a buy-only weighted average that sells never
// reduce, and realized profit accumulates at each sell against the average
// buy price in effect at that moment. Both aggregators implement the
// average cost method, but their running formulas differ and downstream
// views rely on each one's exact semantics.
func ComputeProfitAnalysis(transactions []model.Transaction, prices model.CurrentPriceMap) []model.ProfitAnalysisData {
	states := make(map[string]*profitState)
	order := []string{}

	for _, tx := range sortedByDate(transactions) {
		state, ok := states[tx.Asset]
		if !ok {
			state = &profitState{}
			states[tx.Asset] = state
			order = append(order, tx.Asset)
		}

		switch tx.Type {
		case model.TransactionBuy:
			newTotal := state.totalBought + tx.Quantity
			state.averageBuyPrice = (state.averageBuyPrice*state.totalBought + tx.UnitPrice*tx.Quantity) / newTotal
			state.totalBought = newTotal
		case model.TransactionSell:
			state.realizedProfit += tx.Quantity * (tx.UnitPrice - state.averageBuyPrice)
			state.totalSold += tx.Quantity
		}
	}

	analysis := []model.ProfitAnalysisData{}
	for _, symbol := range order {
		state := states[symbol]

		remaining := state.totalBought - state.totalSold
		if remaining < QuantityEpsilon {
			remaining = 0
		}

		currentPrice := prices[symbol].Price
		unrealized := remaining * (currentPrice - state.averageBuyPrice)
		totalProfit := state.realizedProfit + unrealized

		variation := 0.0
		if denominator := state.totalBought * state.averageBuyPrice; denominator > 0 {
			variation = totalProfit / denominator * 100
		}

		analysis = append(analysis, model.ProfitAnalysisData{
			Symbol:            symbol,
			TotalBought:       state.totalBought,
			TotalSold:         state.totalSold,
			RemainingQuantity: remaining,
			AverageBuyPrice:   state.averageBuyPrice,
			CurrentPrice:      currentPrice,
			RealizedProfit:    state.realizedProfit,
			UnrealizedProfit:  unrealized,
			TotalProfit:       totalProfit,
			TotalVariation:    variation,
		})
	}

	return analysis
}

// ComputeProfitMetrics aggregates the per-asset analysis. Win rate is the
// share of ever-sold assets whose realized profit is positive, or 0 when
// nothing was ever sold. Best and worst asset ties resolve to the first
// encountered row.
func ComputeProfitMetrics(rows []model.ProfitAnalysisData) model.ProfitMetrics {
	metrics := model.ProfitMetrics{TotalAssets: len(rows)}
	if len(rows) == 0 {
		return metrics
	}

	soldCount := 0
	winCount := 0
	best := rows[0]
	worst := rows[0]

	for _, row := range rows {
		if row.TotalSold > 0 {
			soldCount++
			if row.RealizedProfit > 0 {
				winCount++
			}
		}
		if row.TotalProfit > best.TotalProfit {
			best = row
		}
		if row.TotalProfit < worst.TotalProfit {
			worst = row
		}
	}

	if soldCount > 0 {
		metrics.WinRate = float64(winCount) / float64(soldCount) * 100
	}
	metrics.BestAsset = best.Symbol
	metrics.BestProfit = best.TotalProfit
	metrics.WorstAsset = worst.Symbol
	metrics.WorstProfit = worst.TotalProfit

	return metrics
}
