package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// It handles storing and retrieving the buy/sell ledger that every
// portfolio calculation is derived from.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactions retrieves the full ledger sorted by date in ascending order.
func (s *TransactionRepository) GetTransactions() ([]model.Transaction, error) {
	transactionQuery := `
		SELECT id, date, type, asset, quantity, unit_price, created_at
		FROM "transaction"
		ORDER BY date ASC, created_at ASC
	`

	rows, err := s.db.Query(transactionQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		var dateStr, createdAtStr string
		var t model.Transaction

		err := rows.Scan(
			&t.ID,
			&dateStr,
			&t.Type,
			&t.Asset,
			&t.Quantity,
			&t.UnitPrice,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}
		t.Date, err = ParseTime(dateStr)
		if err != nil || t.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil || t.CreatedAt.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID.
// Returns a zero-value Transaction when no row matches.
func (s *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	if transactionID == "" {
		return model.Transaction{}, nil
	}

	transactionQuery := `
		SELECT id, date, type, asset, quantity, unit_price, created_at
		FROM "transaction"
		WHERE id = ?
	`

	var t model.Transaction
	var dateStr, createdAtStr string
	err := s.db.QueryRow(transactionQuery, transactionID).Scan(
		&t.ID,
		&dateStr,
		&t.Type,
		&t.Asset,
		&t.Quantity,
		&t.UnitPrice,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, nil
	}

	if err != nil {
		return t, fmt.Errorf("failed to scan transaction table results: %w", err)
	}
	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return t, fmt.Errorf("failed to parse date: %w", err)
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil || t.CreatedAt.IsZero() {
		return t, fmt.Errorf("failed to parse date: %w", err)
	}

	return t, nil
}

// CreateTransaction inserts a new transaction and returns it with its generated ID.
func (s *TransactionRepository) CreateTransaction(t model.Transaction) (model.Transaction, error) {
	t.ID = uuid.New().String()
	t.CreatedAt = time.Now().UTC()

	insertQuery := `
        INSERT INTO "transaction" (id, date, type, asset, quantity, unit_price, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `

	_, err := s.db.Exec(insertQuery,
		t.ID,
		t.Date.Format("2006-01-02"),
		t.Type,
		t.Asset,
		t.Quantity,
		t.UnitPrice,
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to insert into transaction table: %w", err)
	}

	return t, nil
}

// UpdateTransaction overwrites the mutable fields of an existing transaction.
// Returns the number of rows affected so callers can distinguish a missing ID.
func (s *TransactionRepository) UpdateTransaction(t model.Transaction) (int64, error) {
	updateQuery := `
		UPDATE "transaction"
		SET date = ?, type = ?, asset = ?, quantity = ?, unit_price = ?
		WHERE id = ?
	`

	result, err := s.db.Exec(updateQuery,
		t.Date.Format("2006-01-02"),
		t.Type,
		t.Asset,
		t.Quantity,
		t.UnitPrice,
		t.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update transaction table: %w", err)
	}

	return result.RowsAffected()
}

// DeleteTransaction removes a transaction by ID.
// Returns the number of rows affected so callers can distinguish a missing ID.
func (s *TransactionRepository) DeleteTransaction(transactionID string) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from transaction table: %w", err)
	}

	return result.RowsAffected()
}

// GetAssets returns the distinct asset symbols present in the ledger,
// sorted alphabetically.
func (s *TransactionRepository) GetAssets() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT asset FROM "transaction" ORDER BY asset ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	assets := []string{}
	for rows.Next() {
		var asset string
		if err := rows.Scan(&asset); err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}
		assets = append(assets, asset)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return assets, nil
}
