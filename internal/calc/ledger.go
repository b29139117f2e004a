package calc

import (
	"sort"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// ledgerState is the running average-cost position for one asset.
type ledgerState struct {
	quantity float64
	invested float64
}

// applyBuy adds the lot to the running position.
func (l *ledgerState) applyBuy(quantity, unitPrice float64) {
	l.quantity += quantity
	l.invested += quantity * unitPrice
}

// applySell removes quantity at the current average cost, so the cost basis
// shrinks by the proportional fraction removed. Positions that drop under
// QuantityEpsilon snap to exactly zero, as does any position that would go
// negative from bad input.
func (l *ledgerState) applySell(quantity float64) {
	avgCost := 0.0
	if l.quantity > QuantityEpsilon {
		avgCost = l.invested / l.quantity
	}
	l.quantity -= quantity
	l.invested -= quantity * avgCost
	if l.quantity < QuantityEpsilon {
		l.quantity = 0
		l.invested = 0
	}
	if l.invested < 0 {
		l.invested = 0
	}
}

// ledgerBook folds transactions per asset while remembering the order in
// which assets first appeared, so output ordering never depends on map
// iteration.
type ledgerBook struct {
	states map[string]*ledgerState
	order  []string
}

func newLedgerBook() *ledgerBook {
	return &ledgerBook{states: make(map[string]*ledgerState)}
}

func (b *ledgerBook) state(symbol string) *ledgerState {
	s, ok := b.states[symbol]
	if !ok {
		s = &ledgerState{}
		b.states[symbol] = s
		b.order = append(b.order, symbol)
	}
	return s
}

func (b *ledgerBook) apply(tx model.Transaction) {
	s := b.state(tx.Asset)
	switch tx.Type {
	case model.TransactionBuy:
		s.applyBuy(tx.Quantity, tx.UnitPrice)
	case model.TransactionSell:
		s.applySell(tx.Quantity)
	}
}

// totalInvested sums the cost basis across all assets.
func (b *ledgerBook) totalInvested() float64 {
	var total float64
	for _, sym := range b.order {
		total += b.states[sym].invested
	}
	return total
}

// sortedByDate returns a copy of transactions in ascending date order.
// The sort is stable: same-day transactions keep their input order, which
// matters for day-by-day replay but not for end-of-history totals.
func sortedByDate(transactions []model.Transaction) []model.Transaction {
	sorted := make([]model.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
