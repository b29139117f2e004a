package model

// Rebalance actions.
const (
	RebalanceBuy  = "buy"
	RebalanceSell = "sell"
)

// RebalanceSuggestion is a single buy or sell order needed to move the
// portfolio towards its target allocation. Suggestions are ephemeral and
// recomputed on every parameter change; they are never persisted.
type RebalanceSuggestion struct {
	Symbol            string  `json:"symbol"`
	Action            string  `json:"action"`
	AmountBRL         float64 `json:"amountBRL"` // Absolute fiat amount to trade
	Quantity          float64 `json:"quantity"`  // Absolute unit amount
	CurrentValue      float64 `json:"currentValue"`
	TargetValue       float64 `json:"targetValue"`
	CurrentAllocation float64 `json:"currentAllocation"` // Percent of rebalanceable value
	TargetAllocation  float64 `json:"targetAllocation"`  // Percent of rebalanceable value
}

// AllocationTarget is one row of the persisted target allocation plan.
// Anchored assets are carved out of the rebalancing math entirely and never
// receive orders. Locked assets keep a fixed target percentage but still
// receive orders to reach it.
type AllocationTarget struct {
	Symbol    string  `json:"symbol"`
	TargetPct float64 `json:"targetPct"`
	Anchored  bool    `json:"anchored"`
	Locked    bool    `json:"locked"`
}
