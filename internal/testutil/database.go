package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the embedded migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Transaction table (quoted because transaction is a reserved keyword)
		CREATE TABLE IF NOT EXISTS "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			date DATE NOT NULL,
			type VARCHAR(10) NOT NULL,
			asset VARCHAR(20) NOT NULL,
			quantity FLOAT NOT NULL,
			unit_price FLOAT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Historical daily closes per asset
		CREATE TABLE IF NOT EXISTS asset_price (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			asset VARCHAR(20) NOT NULL,
			date DATE NOT NULL,
			price FLOAT NOT NULL,
			CONSTRAINT unique_asset_date UNIQUE (asset, date)
		);

		-- Latest live quote per asset
		CREATE TABLE IF NOT EXISTS quote_cache (
			asset VARCHAR(20) NOT NULL PRIMARY KEY,
			price FLOAT NOT NULL,
			percent_change_24h FLOAT NOT NULL,
			fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Rebalancing allocation plan
		CREATE TABLE IF NOT EXISTS allocation_target (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			asset VARCHAR(20) NOT NULL UNIQUE,
			target_pct FLOAT NOT NULL,
			anchored BOOLEAN DEFAULT FALSE NOT NULL,
			locked BOOLEAN DEFAULT FALSE NOT NULL
		);

		-- Price and portfolio alerts
		CREATE TABLE IF NOT EXISTS alert (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			ref_kind VARCHAR(30) NOT NULL,
			ref_symbol VARCHAR(20),
			direction VARCHAR(5) NOT NULL,
			threshold FLOAT NOT NULL,
			enabled BOOLEAN DEFAULT TRUE NOT NULL,
			triggered_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Key/value settings, values optionally encrypted
		CREATE TABLE IF NOT EXISTS system_setting (
			key VARCHAR(50) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			encrypted BOOLEAN DEFAULT FALSE NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := db.Exec(schema)
	return err
}
