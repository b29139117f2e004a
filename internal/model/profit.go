package model

// ProfitAnalysisData tracks realized and unrealized profit for one asset
// over its full lifetime. Unlike AssetPerformance, totals here never
// decrease: totalBought and totalSold accumulate forever so that averages
// and percentages stay comparable after full liquidation and re-entry.
//
// AverageBuyPrice is a buy-only weighted average. Sells never reduce it;
// that is the average cost basis convention, not an oversight.
type ProfitAnalysisData struct {
	Symbol            string  `json:"symbol"`
	TotalBought       float64 `json:"totalBought"`
	TotalSold         float64 `json:"totalSold"`
	RemainingQuantity float64 `json:"remainingQuantity"`
	AverageBuyPrice   float64 `json:"averageBuyPrice"`
	CurrentPrice      float64 `json:"currentPrice"`
	RealizedProfit    float64 `json:"realizedProfit"`
	UnrealizedProfit  float64 `json:"unrealizedProfit"`
	TotalProfit       float64 `json:"totalProfit"` // realized + unrealized
	TotalVariation    float64 `json:"totalVariation"`
}

// ProfitMetrics aggregates the profit analysis across all assets.
// Win rate only considers assets that have ever been sold. Best and worst
// ties are broken by first-encountered row order.
type ProfitMetrics struct {
	TotalAssets int     `json:"totalAssets"`
	WinRate     float64 `json:"winRate"`
	BestAsset   string  `json:"bestAsset"`
	BestProfit  float64 `json:"bestProfit"`
	WorstAsset  string  `json:"worstAsset"`
	WorstProfit float64 `json:"worstProfit"`
}
