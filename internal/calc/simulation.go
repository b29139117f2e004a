package calc

import (
	"math"
	"sort"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// simulatedBook holds the counterfactual positions during an allocation
// replay. Capital allocated to a symbol that has no known price yet sits
// in the cash bucket until a price appears at the next allocation event.
type simulatedBook struct {
	symbols    []string
	shares     map[string]float64 // normalized target fraction per symbol
	quantities map[string]float64
	lastPrices map[string]float64
	cash       float64
}

// SimulateAllocationHistory replays a hypothetical fixed allocation
// against the actual invested-capital schedule: "what if every deposit and
// withdrawal had been allocated per this target mix".
//
// Starting on the first day actual invested capital becomes positive, the
// capital is split across the target symbols. Each day holdings appreciate
// at that day's price, or the last known price when the day is missing
// from the map. Whenever the actual invested capital changes versus the
// previous day, the whole simulated value plus the capital change is
// re-bought into the target percentages from scratch: the strategy
// auto-rebalances on every cash-flow event, not continuously.
func SimulateAllocationHistory(actualHistory []model.PortfolioHistoryPoint, targets map[string]float64, historical model.HistoricalPriceMap) []model.SimulatedHistoryPoint {
	start := -1
	for i, point := range actualHistory {
		if point.InvestedValue > 0 {
			start = i
			break
		}
	}
	if start == -1 {
		return []model.SimulatedHistoryPoint{}
	}

	book := newSimulatedBook(targets)
	if len(book.symbols) == 0 {
		return []model.SimulatedHistoryPoint{}
	}

	simulated := make([]model.SimulatedHistoryPoint, 0, len(actualHistory)-start)
	for i := start; i < len(actualHistory); i++ {
		point := actualHistory[i]
		book.observePrices(point.Date, historical)

		if i == start {
			book.allocate(point.InvestedValue)
		} else if delta := point.InvestedValue - actualHistory[i-1].InvestedValue; math.Abs(delta) > QuantityEpsilon {
			capital := book.value() + delta
			if capital < 0 {
				capital = 0
			}
			book.allocate(capital)
		}

		simulated = append(simulated, model.SimulatedHistoryPoint{
			Date:        point.Date,
			MarketValue: book.value(),
		})
	}

	return simulated
}

func newSimulatedBook(targets map[string]float64) *simulatedBook {
	symbols := []string{}
	total := 0.0
	for symbol, pct := range targets {
		if pct > 0 {
			symbols = append(symbols, symbol)
			total += pct
		}
	}
	sort.Strings(symbols)

	book := &simulatedBook{
		symbols:    symbols,
		shares:     make(map[string]float64, len(symbols)),
		quantities: make(map[string]float64, len(symbols)),
		lastPrices: make(map[string]float64, len(symbols)),
	}
	for _, symbol := range symbols {
		book.shares[symbol] = targets[symbol] / total
	}
	return book
}

// observePrices forward-fills the last known price for each symbol.
func (b *simulatedBook) observePrices(date string, historical model.HistoricalPriceMap) {
	for _, symbol := range b.symbols {
		if price, ok := historical[symbol][date]; ok && price > 0 {
			b.lastPrices[symbol] = price
		}
	}
}

// allocate re-buys the given capital into the target mix at last known
// prices, replacing all current positions.
func (b *simulatedBook) allocate(capital float64) {
	b.cash = 0
	for _, symbol := range b.symbols {
		slice := capital * b.shares[symbol]
		if price := b.lastPrices[symbol]; price > 0 {
			b.quantities[symbol] = slice / price
		} else {
			b.quantities[symbol] = 0
			b.cash += slice
		}
	}
}

func (b *simulatedBook) value() float64 {
	total := b.cash
	for _, symbol := range b.symbols {
		total += b.quantities[symbol] * b.lastPrices[symbol]
	}
	return total
}
