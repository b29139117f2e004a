package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// AlertRepository provides data access methods for the alert table.
type AlertRepository struct {
	db *sql.DB
}

// NewAlertRepository creates a new AlertRepository with the provided database connection.
func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// GetAlerts retrieves all alerts sorted by creation time.
func (s *AlertRepository) GetAlerts() ([]model.Alert, error) {
	rows, err := s.db.Query(`
		SELECT id, ref_kind, ref_symbol, direction, threshold, enabled, triggered_at, created_at
		FROM alert
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query alert table: %w", err)
	}
	defer rows.Close()

	alerts := []model.Alert{}
	for rows.Next() {
		alert, err := scanAlert(rows.Scan)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alert table: %w", err)
	}

	return alerts, nil
}

// GetAlert retrieves a single alert by ID.
// Returns a zero-value Alert when no row matches.
func (s *AlertRepository) GetAlert(alertID string) (model.Alert, error) {
	row := s.db.QueryRow(`
		SELECT id, ref_kind, ref_symbol, direction, threshold, enabled, triggered_at, created_at
		FROM alert
		WHERE id = ?
	`, alertID)

	alert, err := scanAlert(row.Scan)
	if err == sql.ErrNoRows {
		return model.Alert{}, nil
	}
	return alert, err
}

// CreateAlert inserts a new alert and returns it with its generated ID.
func (s *AlertRepository) CreateAlert(alert model.Alert) (model.Alert, error) {
	alert.ID = uuid.New().String()
	alert.CreatedAt = time.Now().UTC()
	alert.Enabled = true

	insertQuery := `
        INSERT INTO alert (id, ref_kind, ref_symbol, direction, threshold, enabled, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `

	_, err := s.db.Exec(insertQuery,
		alert.ID,
		string(alert.Ref.Kind),
		alert.Ref.Symbol,
		alert.Direction,
		alert.Threshold,
		alert.Enabled,
		alert.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Alert{}, fmt.Errorf("failed to insert into alert table: %w", err)
	}

	return alert, nil
}

// MarkTriggered records the trigger time and disables the alert so it
// fires once per arming.
func (s *AlertRepository) MarkTriggered(alertID string, at time.Time) error {
	_, err := s.db.Exec(
		`UPDATE alert SET triggered_at = ?, enabled = FALSE WHERE id = ?`,
		at.UTC().Format(time.RFC3339), alertID,
	)
	if err != nil {
		return fmt.Errorf("failed to update alert table: %w", err)
	}
	return nil
}

// SetEnabled re-arms or disables an alert. Re-arming clears the trigger time.
// Returns the number of rows affected so callers can distinguish a missing ID.
func (s *AlertRepository) SetEnabled(alertID string, enabled bool) (int64, error) {
	var result sql.Result
	var err error
	if enabled {
		result, err = s.db.Exec(`UPDATE alert SET enabled = TRUE, triggered_at = NULL WHERE id = ?`, alertID)
	} else {
		result, err = s.db.Exec(`UPDATE alert SET enabled = FALSE WHERE id = ?`, alertID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to update alert table: %w", err)
	}

	return result.RowsAffected()
}

// DeleteAlert removes an alert by ID.
// Returns the number of rows affected so callers can distinguish a missing ID.
func (s *AlertRepository) DeleteAlert(alertID string) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM alert WHERE id = ?`, alertID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from alert table: %w", err)
	}

	return result.RowsAffected()
}

func scanAlert(scan func(dest ...any) error) (model.Alert, error) {
	var alert model.Alert
	var refSymbol, triggeredAtStr sql.NullString
	var createdAtStr string

	err := scan(
		&alert.ID,
		&alert.Ref.Kind,
		&refSymbol,
		&alert.Direction,
		&alert.Threshold,
		&alert.Enabled,
		&triggeredAtStr,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Alert{}, err
	}
	if err != nil {
		return model.Alert{}, fmt.Errorf("failed to scan alert table results: %w", err)
	}

	if refSymbol.Valid {
		alert.Ref.Symbol = refSymbol.String
	}
	if triggeredAtStr.Valid {
		triggeredAt, err := ParseTime(triggeredAtStr.String)
		if err != nil {
			return model.Alert{}, fmt.Errorf("failed to parse date: %w", err)
		}
		alert.TriggeredAt = &triggeredAt
	}
	alert.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Alert{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return alert, nil
}
