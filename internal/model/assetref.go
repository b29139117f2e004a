package model

// AssetRefKind discriminates the kinds of value an alert can watch.
type AssetRefKind string

// AssetRef kinds.
const (
	RefSymbol                = AssetRefKind("symbol")
	RefPortfolioTotal        = AssetRefKind("portfolio_total")
	RefUnrealizedProfitTotal = AssetRefKind("unrealized_profit_total")
)

// AssetRef identifies a numeric value that can be observed: the live price
// of a concrete asset, the total portfolio market value, or the total
// unrealized profit. Symbol is only meaningful for RefSymbol.
type AssetRef struct {
	Kind   AssetRefKind `json:"kind"`
	Symbol string       `json:"symbol,omitempty"`
}

// Valid reports whether the reference is well formed.
func (r AssetRef) Valid() bool {
	switch r.Kind {
	case RefSymbol:
		return r.Symbol != ""
	case RefPortfolioTotal, RefUnrealizedProfitTotal:
		return true
	}
	return false
}
