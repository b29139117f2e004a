package calc

import (
	"math"
	"testing"
	"time"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// Shared helpers for the calc test suite.

func day(t *testing.T, date string) time.Time {
	t.Helper()
	parsed, err := time.Parse(DateFormat, date)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	return parsed
}

func buy(t *testing.T, date, asset string, quantity, unitPrice float64) model.Transaction {
	t.Helper()
	return model.Transaction{
		ID:        asset + "-buy-" + date,
		Date:      day(t, date),
		Type:      model.TransactionBuy,
		Asset:     asset,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
}

func sell(t *testing.T, date, asset string, quantity, unitPrice float64) model.Transaction {
	t.Helper()
	return model.Transaction{
		ID:        asset + "-sell-" + date,
		Date:      day(t, date),
		Type:      model.TransactionSell,
		Asset:     asset,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
}

func quote(price float64) model.Quote {
	return model.Quote{Price: price}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
