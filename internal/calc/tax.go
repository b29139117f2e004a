package calc

import (
	"fmt"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// TaxPolicy is the jurisdiction rule applied by the tax simulation. The
// values are data, not code: callers can swap thresholds without touching
// the calculation.
type TaxPolicy struct {
	// ExemptionThreshold is the monthly sale proceeds (BRL) at or below
	// which the month is exempt. The comparison is strict: exactly at the
	// threshold is still exempt.
	ExemptionThreshold float64

	// Rate applied to a non-exempt month's realized profit when positive.
	Rate float64
}

// DefaultTaxPolicy is the Brazilian crypto capital gains simulation:
// months with up to 35,000 BRL in sales are exempt, everything above pays
// 15% on positive realized profit.
var DefaultTaxPolicy = TaxPolicy{
	ExemptionThreshold: 35000,
	Rate:               0.15,
}

// ComputeTaxReport simulates capital gains tax for one calendar year.
//
// Cost basis carries over from prior years, so the full transaction
// history is replayed in date order and only sells dated inside the target
// year contribute to the monthly buckets. A month is exempt when its total
// sale proceeds stay at or below the policy threshold; non-exempt months
// owe Rate times realized profit, but only when that profit is positive;
// a loss month is never taxed regardless of volume.
//
// Tax output is user-sensitive, so a transaction with a zero date is a
// structural error rather than a silently-zero month.
func ComputeTaxReport(transactions []model.Transaction, year int, policy TaxPolicy) (model.AnnualTaxReport, error) {
	for _, tx := range transactions {
		if tx.Date.IsZero() {
			return model.AnnualTaxReport{}, fmt.Errorf("transaction %s: %w", tx.ID, apperrors.ErrInvalidTransactionDate)
		}
	}

	var sales, profit [13]float64 // index by month number, 1-12

	book := newLedgerBook()
	for _, tx := range sortedByDate(transactions) {
		if tx.Type == model.TransactionSell && tx.Date.Year() == year {
			state := book.state(tx.Asset)
			avgCost := 0.0
			if state.quantity > QuantityEpsilon {
				avgCost = state.invested / state.quantity
			}
			month := int(tx.Date.Month())
			sales[month] += tx.Quantity * tx.UnitPrice
			profit[month] += tx.Quantity * (tx.UnitPrice - avgCost)
		}
		book.apply(tx)
	}

	report := model.AnnualTaxReport{
		Year:   year,
		Months: make([]model.MonthlyTaxReport, 0, 12),
	}
	for month := 1; month <= 12; month++ {
		monthly := model.MonthlyTaxReport{
			Month:          month,
			TotalSales:     sales[month],
			RealizedProfit: profit[month],
			IsExempt:       sales[month] <= policy.ExemptionThreshold,
		}
		if !monthly.IsExempt {
			if monthly.RealizedProfit > 0 {
				monthly.TaxDue = monthly.RealizedProfit * policy.Rate
			}
			report.TotalTaxableSales += monthly.TotalSales
			report.TaxableMonths++
		}
		report.TotalTaxDue += monthly.TaxDue
		report.Months = append(report.Months, monthly)
	}

	return report, nil
}
