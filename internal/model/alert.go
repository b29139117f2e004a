package model

import "time"

// Alert directions.
const (
	AlertAbove = "above"
	AlertBelow = "below"
)

// Alert fires when the value identified by Ref crosses Threshold in the
// configured direction. Alerts are evaluated on every price refresh cycle.
type Alert struct {
	ID          string     `json:"id"`
	Ref         AssetRef   `json:"ref"`
	Direction   string     `json:"direction"`
	Threshold   float64    `json:"threshold"`
	Enabled     bool       `json:"enabled"`
	TriggeredAt *time.Time `json:"triggeredAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt,omitempty"`
}
