package calc

import (
	"time"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// ComputeHistory replays the whole transaction history day by day against
// historical prices and returns one point per calendar day from the day
// before the first transaction through today, inclusive. The leading point
// is a synthetic zero that anchors charts.
//
// For today the live quote is used; for past days the historical price for
// that exact date. When an asset has no price for a day, its cost basis
// stands in for its market value, so sparse price data never drags the
// series to zero.
func ComputeHistory(transactions []model.Transaction, historical model.HistoricalPriceMap, prices model.CurrentPriceMap) []model.PortfolioHistoryPoint {
	return computeHistoryAsOf(transactions, historical, prices, time.Now().UTC(), false)
}

// ComputeAssetHistory is the single-asset variant of ComputeHistory: it
// replays only the given symbol's transactions and records the price used
// for each day on the output points.
func ComputeAssetHistory(transactions []model.Transaction, symbol string, historical model.HistoricalPriceMap, prices model.CurrentPriceMap) []model.PortfolioHistoryPoint {
	filtered := []model.Transaction{}
	for _, tx := range transactions {
		if tx.Asset == symbol {
			filtered = append(filtered, tx)
		}
	}
	return computeHistoryAsOf(filtered, historical, prices, time.Now().UTC(), true)
}

func computeHistoryAsOf(transactions []model.Transaction, historical model.HistoricalPriceMap, prices model.CurrentPriceMap, today time.Time, includePrice bool) []model.PortfolioHistoryPoint {
	if len(transactions) == 0 {
		return []model.PortfolioHistoryPoint{}
	}

	sorted := sortedByDate(transactions)

	byDay := make(map[string][]model.Transaction)
	for _, tx := range sorted {
		key := tx.Date.Format(DateFormat)
		byDay[key] = append(byDay[key], tx)
	}

	first := midnightUTC(sorted[0].Date)
	today = midnightUTC(today)

	book := newLedgerBook()
	history := []model.PortfolioHistoryPoint{{
		Date:          first.AddDate(0, 0, -1).Format(DateFormat),
		InvestedValue: 0,
		MarketValue:   0,
	}}

	for day := first; !day.After(today); day = day.AddDate(0, 0, 1) {
		key := day.Format(DateFormat)
		for _, tx := range byDay[key] {
			book.apply(tx)
		}

		point := model.PortfolioHistoryPoint{
			Date:          key,
			InvestedValue: book.totalInvested(),
		}

		isToday := day.Equal(today)
		for _, symbol := range book.order {
			state := book.states[symbol]
			if state.quantity <= QuantityEpsilon {
				continue
			}

			price, ok := priceForDay(symbol, key, isToday, historical, prices)
			if ok {
				point.MarketValue += state.quantity * price
				if includePrice {
					point.Price = price
				}
			} else {
				// Missing price: the cost basis stands in for market value.
				point.MarketValue += state.invested
			}
		}

		history = append(history, point)
	}

	return history
}

// priceForDay resolves the valuation price for one asset and day. Today is
// valued at the live quote, past days at the historical close for that
// exact date; no carry-forward happens here.
func priceForDay(symbol, day string, isToday bool, historical model.HistoricalPriceMap, prices model.CurrentPriceMap) (float64, bool) {
	if isToday {
		quote, ok := prices[symbol]
		return quote.Price, ok
	}
	price, ok := historical[symbol][day]
	return price, ok
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
