package calc

import (
	"sort"
	"time"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// ComputeNormalizedComparison builds a cross-asset comparison series where
// every symbol is expressed as percentage change from its own baseline
// price: the first price available for it within the selected date range.
// This makes assets with wildly different absolute prices comparable on
// one chart.
//
// The date grid is the union of dates across the given symbols' price
// maps. When rangeDays > 0 the grid is truncated to the last rangeDays
// calendar days, measured from the newest date in the union.
func ComputeNormalizedComparison(symbols []string, historical model.HistoricalPriceMap, rangeDays int) []model.ComparisonPoint {
	dates := unionDates(symbols, historical, rangeDays)
	if len(dates) == 0 {
		return []model.ComparisonPoint{}
	}

	baselines := make(map[string]float64)
	for _, symbol := range symbols {
		for _, date := range dates {
			if price, ok := historical[symbol][date]; ok {
				baselines[symbol] = price
				break
			}
		}
	}

	points := make([]model.ComparisonPoint, 0, len(dates))
	for _, date := range dates {
		point := model.ComparisonPoint{Date: date, Values: make(map[string]float64)}
		for _, symbol := range symbols {
			price, ok := historical[symbol][date]
			if !ok {
				continue
			}
			baseline := baselines[symbol]
			if baseline == 0 {
				point.Values[symbol] = 0
				continue
			}
			point.Values[symbol] = (price/baseline - 1) * 100
		}
		points = append(points, point)
	}

	return points
}

// ComputeCostBasisComparison is the personal-entry-point variant: each
// day's price is expressed as percent deviation from the asset's own
// average buy price, answering "how is my entry doing" rather than "how
// did the asset do since an arbitrary start". Symbols without a profit row
// or without any buys are left out.
func ComputeCostBasisComparison(symbols []string, profitRows []model.ProfitAnalysisData, historical model.HistoricalPriceMap, rangeDays int) []model.ComparisonPoint {
	averages := make(map[string]float64)
	for _, row := range profitRows {
		if row.AverageBuyPrice > 0 {
			averages[row.Symbol] = row.AverageBuyPrice
		}
	}

	tracked := []string{}
	for _, symbol := range symbols {
		if _, ok := averages[symbol]; ok {
			tracked = append(tracked, symbol)
		}
	}

	dates := unionDates(tracked, historical, rangeDays)
	points := make([]model.ComparisonPoint, 0, len(dates))
	for _, date := range dates {
		point := model.ComparisonPoint{Date: date, Values: make(map[string]float64)}
		for _, symbol := range tracked {
			price, ok := historical[symbol][date]
			if !ok {
				continue
			}
			point.Values[symbol] = (price/averages[symbol] - 1) * 100
		}
		points = append(points, point)
	}

	return points
}

// unionDates collects the sorted union of price dates across symbols,
// optionally truncated to the trailing rangeDays window relative to the
// newest date present.
func unionDates(symbols []string, historical model.HistoricalPriceMap, rangeDays int) []string {
	seen := make(map[string]bool)
	dates := []string{}
	for _, symbol := range symbols {
		for date := range historical[symbol] {
			if !seen[date] {
				seen[date] = true
				dates = append(dates, date)
			}
		}
	}
	// ISO dates sort chronologically as strings.
	sort.Strings(dates)

	if rangeDays > 0 && len(dates) > 0 {
		last, err := time.Parse(DateFormat, dates[len(dates)-1])
		if err == nil {
			cutoff := last.AddDate(0, 0, -rangeDays).Format(DateFormat)
			from := sort.SearchStrings(dates, cutoff)
			dates = dates[from:]
		}
	}

	return dates
}
