package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
)

// SettingRepository provides data access methods for the system_setting
// table. Values flagged as sensitive (the stored Gemini API key) are
// encrypted with fernet before they touch disk.
type SettingRepository struct {
	db   *sql.DB
	keys []*fernet.Key
}

// NewSettingRepository creates a new SettingRepository with the provided
// database connection. encryptionKey is a base64 fernet key; when empty,
// encrypted writes are rejected.
func NewSettingRepository(db *sql.DB, encryptionKey string) (*SettingRepository, error) {
	repo := &SettingRepository{db: db}

	if encryptionKey != "" {
		keys, err := fernet.DecodeKeys(encryptionKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode encryption key: %w", err)
		}
		repo.keys = keys
	}

	return repo, nil
}

// GetSetting retrieves and, if needed, decrypts a setting value.
// Returns ErrSettingNotFound when the key does not exist.
func (s *SettingRepository) GetSetting(key string) (string, error) {
	var value string
	var encrypted bool

	err := s.db.QueryRow(
		`SELECT value, encrypted FROM system_setting WHERE key = ?`, key,
	).Scan(&value, &encrypted)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query system_setting table: %w", err)
	}

	if !encrypted {
		return value, nil
	}

	if len(s.keys) == 0 {
		return "", fmt.Errorf("setting %q is encrypted but no encryption key is configured", key)
	}
	plaintext := fernet.VerifyAndDecrypt([]byte(value), 0, s.keys)
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt setting %q", key)
	}

	return string(plaintext), nil
}

// SetSetting upserts a setting value, encrypting it first when requested.
func (s *SettingRepository) SetSetting(key, value string, encrypt bool) error {
	if encrypt {
		if len(s.keys) == 0 {
			return fmt.Errorf("cannot encrypt setting %q: no encryption key is configured", key)
		}
		token, err := fernet.EncryptAndSign([]byte(value), s.keys[0])
		if err != nil {
			return fmt.Errorf("failed to encrypt setting %q: %w", key, err)
		}
		value = string(token)
	}

	upsertQuery := `
        INSERT INTO system_setting (key, value, encrypted, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET
            value = excluded.value,
            encrypted = excluded.encrypted,
            updated_at = excluded.updated_at
    `

	_, err := s.db.Exec(upsertQuery, key, value, encrypt, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert into system_setting table: %w", err)
	}

	return nil
}

// DeleteSetting removes a setting by key.
func (s *SettingRepository) DeleteSetting(key string) error {
	_, err := s.db.Exec(`DELETE FROM system_setting WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete from system_setting table: %w", err)
	}
	return nil
}
