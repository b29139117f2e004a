package model

// MonthlyTaxReport holds the capital gains tax simulation for one calendar
// month. A month is exempt when its total sale proceeds stay at or below
// the policy threshold; a loss month is never taxed, even above it.
type MonthlyTaxReport struct {
	Month          int     `json:"month"` // 1-12
	TotalSales     float64 `json:"totalSales"`
	RealizedProfit float64 `json:"realizedProfit"`
	IsExempt       bool    `json:"isExempt"`
	TaxDue         float64 `json:"taxDue"`
}

// AnnualTaxReport rolls up the twelve monthly reports for a year.
type AnnualTaxReport struct {
	Year              int                `json:"year"`
	Months            []MonthlyTaxReport `json:"months"`
	TotalTaxDue       float64            `json:"totalTaxDue"`
	TotalTaxableSales float64            `json:"totalTaxableSales"`
	TaxableMonths     int                `json:"taxableMonths"`
}
