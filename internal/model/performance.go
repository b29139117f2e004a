package model

// AssetPerformance represents the current state of a held asset.
// One row exists per asset with positive holdings; assets sold down to zero
// are omitted. All values are derived from the full transaction history
// using the weighted average cost method.
type AssetPerformance struct {
	Symbol        string  `json:"symbol"`
	TotalInvested float64 `json:"totalInvested"` // Running cost basis
	CurrentValue  float64 `json:"currentValue"`  // totalQuantity * current price
	ProfitLoss    float64 `json:"profitLoss"`    // currentValue - totalInvested
	Variation     float64 `json:"variation"`     // profitLoss / totalInvested * 100
	TotalQuantity float64 `json:"totalQuantity"`
}
