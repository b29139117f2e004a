package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// PriceRepository provides data access methods for the asset_price and
// quote_cache tables: daily closes for history charts and the latest live
// quote per asset.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// GetHistoricalPrices retrieves all stored daily closes for the given
// assets, keyed by symbol and then by ISO date.
func (s *PriceRepository) GetHistoricalPrices(assets []string) (model.HistoricalPriceMap, error) {
	historical := model.HistoricalPriceMap{}
	if len(assets) == 0 {
		return historical, nil
	}

	priceQuery := `
		SELECT asset, date, price
		FROM asset_price
		WHERE asset IN (` + placeholders(len(assets)) + `)
		ORDER BY date ASC
	`

	args := make([]any, len(assets))
	for i, asset := range assets {
		args[i] = asset
	}

	rows, err := s.db.Query(priceQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset_price table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var asset, dateStr string
		var price float64
		if err := rows.Scan(&asset, &dateStr, &price); err != nil {
			return nil, fmt.Errorf("failed to scan asset_price table results: %w", err)
		}
		// Dates may come back as full timestamps depending on how they were written.
		date, err := ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		if historical[asset] == nil {
			historical[asset] = make(map[string]float64)
		}
		historical[asset][date.Format("2006-01-02")] = price
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset_price table: %w", err)
	}

	return historical, nil
}

// SaveHistoricalPrice upserts a single daily close.
func (s *PriceRepository) SaveHistoricalPrice(asset, date string, price float64) error {
	upsertQuery := `
        INSERT INTO asset_price (id, asset, date, price)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(asset, date) DO UPDATE SET price = excluded.price
    `

	_, err := s.db.Exec(upsertQuery, uuid.New().String(), asset, date, price)
	if err != nil {
		return fmt.Errorf("failed to upsert into asset_price table: %w", err)
	}

	return nil
}

// GetCachedQuotes retrieves the latest live quote for every cached asset.
func (s *PriceRepository) GetCachedQuotes() (model.CurrentPriceMap, error) {
	rows, err := s.db.Query(`SELECT asset, price, percent_change_24h FROM quote_cache`)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote_cache table: %w", err)
	}
	defer rows.Close()

	quotes := model.CurrentPriceMap{}
	for rows.Next() {
		var asset string
		var quote model.Quote
		if err := rows.Scan(&asset, &quote.Price, &quote.PercentChange24h); err != nil {
			return nil, fmt.Errorf("failed to scan quote_cache table results: %w", err)
		}
		quotes[asset] = quote
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quote_cache table: %w", err)
	}

	return quotes, nil
}

// SaveQuote upserts the live quote for an asset.
func (s *PriceRepository) SaveQuote(asset string, quote model.Quote) error {
	upsertQuery := `
        INSERT INTO quote_cache (asset, price, percent_change_24h, fetched_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(asset) DO UPDATE SET
            price = excluded.price,
            percent_change_24h = excluded.percent_change_24h,
            fetched_at = excluded.fetched_at
    `

	_, err := s.db.Exec(upsertQuery, asset, quote.Price, quote.PercentChange24h, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert into quote_cache table: %w", err)
	}

	return nil
}

// placeholders builds a "?, ?, ?" list for IN clauses.
func placeholders(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		out += "?"
	}
	return out
}
