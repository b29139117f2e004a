package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	// Simple creation with defaults
//	tx := testutil.NewTransaction().Build(t, db)
//
//	// Customized transaction
//	tx := testutil.NewTransaction().
//	    WithAsset("ETH").
//	    WithType("sell").
//	    WithQuantity(0.5).
//	    Build(t, db)
type TransactionBuilder struct {
	ID        string
	Date      time.Time
	Type      string
	Asset     string
	Quantity  float64
	UnitPrice float64
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		ID:        MakeID(),
		Date:      time.Now(),
		Type:      "buy",
		Asset:     "BTC",
		Quantity:  1.0,
		UnitPrice: 100000.0,
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(txType string) *TransactionBuilder {
	b.Type = txType
	return b
}

// WithAsset sets the asset symbol.
func (b *TransactionBuilder) WithAsset(asset string) *TransactionBuilder {
	b.Asset = asset
	return b
}

// WithQuantity sets the unit quantity.
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithUnitPrice sets the fiat price per unit.
func (b *TransactionBuilder) WithUnitPrice(price float64) *TransactionBuilder {
	b.UnitPrice = price
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, date, type, asset, quantity, unit_price)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Date.Format("2006-01-02"), b.Type, b.Asset, b.Quantity, b.UnitPrice)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:        b.ID,
		Date:      b.Date,
		Type:      b.Type,
		Asset:     b.Asset,
		Quantity:  b.Quantity,
		UnitPrice: b.UnitPrice,
		CreatedAt: time.Now(),
	}
}

// Convenience functions

// CreateBuy creates a buy transaction for the given asset.
//
// Example usage:
//
//	tx := testutil.CreateBuy(t, db, "BTC", 0.5, 250000)
func CreateBuy(t *testing.T, db *sql.DB, asset string, quantity, unitPrice float64) model.Transaction {
	t.Helper()
	return NewTransaction().WithAsset(asset).WithQuantity(quantity).WithUnitPrice(unitPrice).Build(t, db)
}

// CreateSell creates a sell transaction for the given asset.
//
// Example usage:
//
//	tx := testutil.CreateSell(t, db, "BTC", 0.2, 300000)
func CreateSell(t *testing.T, db *sql.DB, asset string, quantity, unitPrice float64) model.Transaction {
	t.Helper()
	return NewTransaction().WithType("sell").WithAsset(asset).WithQuantity(quantity).WithUnitPrice(unitPrice).Build(t, db)
}

// QuoteBuilder provides a fluent interface for seeding the live quote cache.
type QuoteBuilder struct {
	Asset            string
	Price            float64
	PercentChange24h float64
}

// NewQuote creates a QuoteBuilder with sensible defaults.
func NewQuote(asset string) *QuoteBuilder {
	return &QuoteBuilder{
		Asset:            asset,
		Price:            100000.0,
		PercentChange24h: 0.0,
	}
}

// WithPrice sets the quote price.
func (b *QuoteBuilder) WithPrice(price float64) *QuoteBuilder {
	b.Price = price
	return b
}

// WithPercentChange sets the 24h percent change.
func (b *QuoteBuilder) WithPercentChange(pct float64) *QuoteBuilder {
	b.PercentChange24h = pct
	return b
}

// Build upserts the quote in the database and returns it.
func (b *QuoteBuilder) Build(t *testing.T, db *sql.DB) model.Quote {
	t.Helper()

	query := `
		INSERT INTO quote_cache (asset, price, percent_change_24h, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(asset) DO UPDATE SET
			price = excluded.price,
			percent_change_24h = excluded.percent_change_24h,
			fetched_at = excluded.fetched_at
	`

	_, err := db.Exec(query, b.Asset, b.Price, b.PercentChange24h, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test quote: %v", err)
	}

	return model.Quote{
		Price:            b.Price,
		PercentChange24h: b.PercentChange24h,
	}
}

// CreateQuote seeds a live quote for the given asset.
//
// Example usage:
//
//	testutil.CreateQuote(t, db, "BTC", 350000)
func CreateQuote(t *testing.T, db *sql.DB, asset string, price float64) model.Quote {
	t.Helper()
	return NewQuote(asset).WithPrice(price).Build(t, db)
}

// CreateHistoricalPrice seeds one daily close for an asset.
//
// Example usage:
//
//	testutil.CreateHistoricalPrice(t, db, "BTC", "2024-01-05", 200000)
func CreateHistoricalPrice(t *testing.T, db *sql.DB, asset, date string, price float64) {
	t.Helper()

	query := `
		INSERT INTO asset_price (id, asset, date, price)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(asset, date) DO UPDATE SET price = excluded.price
	`

	if _, err := db.Exec(query, MakeID(), asset, date, price); err != nil {
		t.Fatalf("Failed to create test historical price: %v", err)
	}
}

// AllocationTargetBuilder provides a fluent interface for creating allocation plan rows.
type AllocationTargetBuilder struct {
	Symbol    string
	TargetPct float64
	Anchored  bool
	Locked    bool
}

// NewAllocationTarget creates an AllocationTargetBuilder with defaults.
func NewAllocationTarget(symbol string) *AllocationTargetBuilder {
	return &AllocationTargetBuilder{
		Symbol:    symbol,
		TargetPct: 50.0,
	}
}

// WithTargetPct sets the target percentage.
func (b *AllocationTargetBuilder) WithTargetPct(pct float64) *AllocationTargetBuilder {
	b.TargetPct = pct
	return b
}

// Anchor marks the asset as anchored.
func (b *AllocationTargetBuilder) Anchor() *AllocationTargetBuilder {
	b.Anchored = true
	b.TargetPct = 0
	return b
}

// Lock marks the target percentage as locked.
func (b *AllocationTargetBuilder) Lock() *AllocationTargetBuilder {
	b.Locked = true
	return b
}

// Build upserts the allocation target in the database and returns it.
func (b *AllocationTargetBuilder) Build(t *testing.T, db *sql.DB) model.AllocationTarget {
	t.Helper()

	query := `
		INSERT INTO allocation_target (id, asset, target_pct, anchored, locked)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(asset) DO UPDATE SET
			target_pct = excluded.target_pct,
			anchored = excluded.anchored,
			locked = excluded.locked
	`

	_, err := db.Exec(query, MakeID(), b.Symbol, b.TargetPct, b.Anchored, b.Locked)
	if err != nil {
		t.Fatalf("Failed to create test allocation target: %v", err)
	}

	return model.AllocationTarget{
		Symbol:    b.Symbol,
		TargetPct: b.TargetPct,
		Anchored:  b.Anchored,
		Locked:    b.Locked,
	}
}

// AlertBuilder provides a fluent interface for creating test alerts.
type AlertBuilder struct {
	ID        string
	RefKind   model.AssetRefKind
	RefSymbol string
	Direction string
	Threshold float64
	Enabled   bool
}

// NewAlert creates an AlertBuilder with sensible defaults.
func NewAlert() *AlertBuilder {
	return &AlertBuilder{
		ID:        MakeID(),
		RefKind:   model.RefSymbol,
		RefSymbol: "BTC",
		Direction: model.AlertAbove,
		Threshold: 500000.0,
		Enabled:   true,
	}
}

// WithRef sets the referenced value.
func (b *AlertBuilder) WithRef(kind model.AssetRefKind, symbol string) *AlertBuilder {
	b.RefKind = kind
	b.RefSymbol = symbol
	return b
}

// WithDirection sets the crossing direction.
func (b *AlertBuilder) WithDirection(direction string) *AlertBuilder {
	b.Direction = direction
	return b
}

// WithThreshold sets the threshold.
func (b *AlertBuilder) WithThreshold(threshold float64) *AlertBuilder {
	b.Threshold = threshold
	return b
}

// Disabled marks the alert as disabled.
func (b *AlertBuilder) Disabled() *AlertBuilder {
	b.Enabled = false
	return b
}

// Build creates the alert in the database and returns it.
func (b *AlertBuilder) Build(t *testing.T, db *sql.DB) model.Alert {
	t.Helper()

	query := `
		INSERT INTO alert (id, ref_kind, ref_symbol, direction, threshold, enabled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := time.Now().UTC()
	_, err := db.Exec(query, b.ID, string(b.RefKind), b.RefSymbol, b.Direction, b.Threshold, b.Enabled, createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test alert: %v", err)
	}

	return model.Alert{
		ID:        b.ID,
		Ref:       model.AssetRef{Kind: b.RefKind, Symbol: b.RefSymbol},
		Direction: b.Direction,
		Threshold: b.Threshold,
		Enabled:   b.Enabled,
		CreatedAt: createdAt,
	}
}
