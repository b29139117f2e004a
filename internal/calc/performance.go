package calc

import (
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// ComputePerformance folds the full transaction history into one
// AssetPerformance row per asset with positive holdings, valued at the
// supplied live quotes.
//
// Buys add quantity and cost; sells remove quantity and a proportional
// slice of the cost basis (weighted average cost, not FIFO/LIFO). Assets
// sold down to zero are omitted from the result. A symbol missing from the
// price map is valued at zero; the row still appears so the caller can see
// the position.
func ComputePerformance(transactions []model.Transaction, prices model.CurrentPriceMap) []model.AssetPerformance {
	book := newLedgerBook()
	for _, tx := range sortedByDate(transactions) {
		book.apply(tx)
	}

	performance := []model.AssetPerformance{}
	for _, symbol := range book.order {
		state := book.states[symbol]
		if state.quantity <= QuantityEpsilon {
			continue
		}

		currentValue := state.quantity * prices[symbol].Price
		profitLoss := currentValue - state.invested
		variation := 0.0
		if state.invested > 0 {
			variation = profitLoss / state.invested * 100
		}

		performance = append(performance, model.AssetPerformance{
			Symbol:        symbol,
			TotalInvested: state.invested,
			CurrentValue:  currentValue,
			ProfitLoss:    profitLoss,
			Variation:     variation,
			TotalQuantity: state.quantity,
		})
	}

	return performance
}
