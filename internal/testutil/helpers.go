package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/pricing"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// TestEncryptionKey is a fixed fernet key for encrypting settings in tests.
const TestEncryptionKey = "cw_0x689RpI-jtRR7oE8h_eQsKImvJapLeSbXpwF4e4="

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewTransactionService(transactionRepo)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	transactionService := NewTestTransactionService(t, db)
	priceRepo := repository.NewPriceRepository(db)

	return service.NewPortfolioService(transactionService, priceRepo)
}

func NewTestTaxService(t *testing.T, db *sql.DB) *service.TaxService {
	t.Helper()

	return service.NewTaxService(NewTestTransactionService(t, db))
}

func NewTestRebalanceService(t *testing.T, db *sql.DB) *service.RebalanceService {
	t.Helper()

	allocationRepo := repository.NewAllocationRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	return service.NewRebalanceService(allocationRepo, NewTestPortfolioService(t, db), priceRepo)
}

func NewTestAlertService(t *testing.T, db *sql.DB) *service.AlertService {
	t.Helper()

	alertRepo := repository.NewAlertRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	return service.NewAlertService(alertRepo, NewTestPortfolioService(t, db), priceRepo)
}

func NewTestInsightService(t *testing.T, db *sql.DB) *service.InsightService {
	t.Helper()

	return service.NewInsightService(NewTestSettingRepository(t, db), NewTestPortfolioService(t, db), "gemini-2.0-flash")
}

// NewTestPriceService creates a PriceService whose market data client talks
// to the given base URL, typically an httptest server.
func NewTestPriceService(t *testing.T, db *sql.DB, baseURL string) *service.PriceService {
	t.Helper()

	priceRepo := repository.NewPriceRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewPriceService(pricing.NewClient(baseURL), priceRepo, transactionRepo)
}

// NewTestSettingRepository creates a SettingRepository with the fixed test
// encryption key.
func NewTestSettingRepository(t *testing.T, db *sql.DB) *repository.SettingRepository {
	t.Helper()

	settingRepo, err := repository.NewSettingRepository(db, TestEncryptionKey)
	if err != nil {
		t.Fatalf("Failed to create setting repository: %v", err)
	}
	return settingRepo
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}
