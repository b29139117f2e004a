package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/testutil"
)

// TestInsightService_SaveAPIKey tests API key storage.
//
// WHY: The key is the only secret the application holds. It must round-trip
// through the encrypted settings store, and its presence must be observable
// without exposing the value.
func TestInsightService_SaveAPIKey(t *testing.T) {
	t.Run("rejects an empty key", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInsightService(t, db)

		// Execute
		err := svc.SaveAPIKey("   ")

		// Assert
		if !errors.Is(err, apperrors.ErrMissingAPIKey) {
			t.Errorf("Expected ErrMissingAPIKey, got %v", err)
		}
	})

	t.Run("stores the key encrypted at rest", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInsightService(t, db)

		// Execute
		if err := svc.SaveAPIKey("test-api-key-123"); err != nil {
			t.Fatalf("SaveAPIKey() returned unexpected error: %v", err)
		}

		// Assert
		if !svc.HasAPIKey() {
			t.Error("Expected HasAPIKey() to report true after save")
		}

		// The raw stored value must not contain the plaintext key
		var stored string
		err := db.QueryRow(`SELECT value FROM system_setting WHERE key = 'gemini_api_key'`).Scan(&stored)
		if err != nil {
			t.Fatalf("Failed to read stored setting: %v", err)
		}
		if stored == "test-api-key-123" {
			t.Error("Expected stored key to be encrypted, found plaintext")
		}

		// But the decrypted read must round-trip
		value, err := testutil.NewTestSettingRepository(t, db).GetSetting("gemini_api_key")
		if err != nil {
			t.Fatalf("GetSetting() returned unexpected error: %v", err)
		}
		if value != "test-api-key-123" {
			t.Errorf("Decrypted key = %q, want %q", value, "test-api-key-123")
		}
	})
}

// TestInsightService_HasAPIKey tests key presence reporting.
func TestInsightService_HasAPIKey(t *testing.T) {
	t.Run("reports false before any key is stored", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInsightService(t, db)

		// Assert
		if svc.HasAPIKey() {
			t.Error("Expected HasAPIKey() to report false on a fresh database")
		}
	})
}

// TestInsightService_Ask tests the missing-key guard. The model call itself
// needs live credentials and is not exercised here.
func TestInsightService_Ask(t *testing.T) {
	t.Run("returns ErrMissingAPIKey without a stored key", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInsightService(t, db)

		// Execute
		_, err := svc.Ask(context.Background(), "how is my portfolio doing?")

		// Assert
		if !errors.Is(err, apperrors.ErrMissingAPIKey) {
			t.Errorf("Expected ErrMissingAPIKey, got %v", err)
		}
	})
}
