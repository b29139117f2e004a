package pricing

import "time"

// SimplePriceResponse represents the raw JSON response from the CoinGecko
// simple price endpoint. The outer key is the coin ID, the inner keys are
// the quote currency and its 24h-change variant:
//
//	{"bitcoin": {"brl": 350000.12, "brl_24h_change": -1.3}}
type SimplePriceResponse map[string]map[string]float64

// MarketChartResponse represents the raw JSON response from the CoinGecko
// market chart endpoint. Each entry is a [timestamp_ms, value] pair.
type MarketChartResponse struct {
	Prices [][]float64 `json:"prices"`
}

// DailyClose represents one day's closing price after parsing a market
// chart response. Date is truncated to midnight UTC.
type DailyClose struct {
	Date  time.Time
	Price float64
}
