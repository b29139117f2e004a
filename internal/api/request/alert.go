package request

type CreateAlertRequest struct {
	RefKind   string  `json:"refKind"`
	RefSymbol string  `json:"refSymbol,omitempty"`
	Direction string  `json:"direction"`
	Threshold float64 `json:"threshold"`
}

type SetAlertEnabledRequest struct {
	Enabled bool `json:"enabled"`
}
