package model

// PortfolioHistoryPoint is one day in the reconstructed portfolio series.
// InvestedValue is the cumulative net capital committed (reduced
// proportionally on sells). MarketValue is the valuation of all held assets
// on that date; assets with no price for the date contribute their cost
// basis instead, so sparse price data never shows up as a trough of zero.
// Price is only populated in single-asset mode, and only when a real price
// existed for the day.
type PortfolioHistoryPoint struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	InvestedValue float64 `json:"investedValue"`
	MarketValue   float64 `json:"marketValue"`
	Price         float64 `json:"price,omitempty"`
}

// ComparisonPoint is one day in a multi-asset comparison series.
// Values holds a percentage figure per symbol; symbols without a price on
// this date are simply absent from the map.
type ComparisonPoint struct {
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values"`
}

// SimulatedHistoryPoint is one day in a counterfactual allocation replay.
type SimulatedHistoryPoint struct {
	Date        string  `json:"date"`
	MarketValue float64 `json:"marketValue"`
}
