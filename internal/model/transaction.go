package model

import "time"

// Transaction represents a single buy or sell of a crypto asset.
// The full transaction history is the durable source of truth; every
// derived figure (performance, profit, history, tax) is recomputed from it.
type Transaction struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	Asset     string    `json:"asset"`
	Quantity  float64   `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Transaction types.
const (
	TransactionBuy  = "buy"
	TransactionSell = "sell"
)
