package model

// Quote holds the live market data for a single asset.
type Quote struct {
	Price            float64 `json:"price"`
	PercentChange24h float64 `json:"percentChange24h"`
}

// CurrentPriceMap maps asset symbols to their latest quote.
// Entries may be absent for any symbol; missing quotes are a normal input
// condition, never an error.
type CurrentPriceMap = map[string]Quote

// HistoricalPriceMap maps asset symbols to their daily closing prices,
// keyed by date in YYYY-MM-DD format. Both levels may be sparse.
type HistoricalPriceMap = map[string]map[string]float64

// AssetPrice is a persisted daily closing price for one asset.
type AssetPrice struct {
	ID     string  `json:"id"`
	Symbol string  `json:"symbol"`
	Date   string  `json:"date"`
	Price  float64 `json:"price"`
}
