// Package calc is the portfolio calculation engine: pure, stateless
// transformations from a transaction ledger plus price snapshots into
// performance, profit, history, tax, and rebalancing figures.
//
// Every function receives its complete input and returns a fresh result.
// Nothing here performs I/O, keeps shared state, or blocks; callers may
// invoke these functions concurrently without coordination. Missing price
// entries are a normal input condition: divisions by zero resolve to 0 and
// quantities that would drift negative are snapped to zero rather than
// raising errors.
package calc

// Epsilon thresholds shared by all calculations and their tests.
const (
	// QuantityEpsilon is the holdings threshold below which a position is
	// snapped to exactly zero, so floating point drift from repeated
	// buy/sell cycles cannot accumulate.
	QuantityEpsilon = 1e-8

	// ValueEpsilonFiat is the fiat amount (BRL) under which a rebalance
	// order is considered a no-op and omitted.
	ValueEpsilonFiat = 0.01

	// AllocationSumTolerancePct is how far a set of target percentages may
	// deviate from 100 before the boundary rejects it.
	AllocationSumTolerancePct = 1.5
)

// DateFormat is the calendar-day key format used across price maps and
// history output.
const DateFormat = "2006-01-02"
