package calc

import (
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// ResolveAssetRef dispatches a tagged asset reference to its current
// numeric value: the live price of a concrete symbol, the total portfolio
// market value, or the total unrealized profit. Unknown symbols and
// malformed references resolve to 0.
func ResolveAssetRef(ref model.AssetRef, performance []model.AssetPerformance, prices model.CurrentPriceMap) float64 {
	switch ref.Kind {
	case model.RefSymbol:
		return prices[ref.Symbol].Price
	case model.RefPortfolioTotal:
		total := 0.0
		for _, row := range performance {
			total += row.CurrentValue
		}
		return total
	case model.RefUnrealizedProfitTotal:
		total := 0.0
		for _, row := range performance {
			total += row.ProfitLoss
		}
		return total
	}
	return 0
}
