package request

type CreateTransactionRequest struct {
	Date      string  `json:"date"`
	Type      string  `json:"type"`
	Asset     string  `json:"asset"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type UpdateTransactionRequest struct {
	Date      *string  `json:"date,omitempty"`
	Type      *string  `json:"type,omitempty"`
	Asset     *string  `json:"asset,omitempty"`
	Quantity  *float64 `json:"quantity,omitempty"`
	UnitPrice *float64 `json:"unitPrice,omitempty"`
}
