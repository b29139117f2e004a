package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// AllocationRepository provides data access methods for the
// allocation_target table holding the user's rebalancing plan.
type AllocationRepository struct {
	db *sql.DB
}

// NewAllocationRepository creates a new AllocationRepository with the provided database connection.
func NewAllocationRepository(db *sql.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

// GetAllocationTargets retrieves the full allocation plan sorted by symbol.
func (s *AllocationRepository) GetAllocationTargets() ([]model.AllocationTarget, error) {
	rows, err := s.db.Query(`
		SELECT asset, target_pct, anchored, locked
		FROM allocation_target
		ORDER BY asset ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation_target table: %w", err)
	}
	defer rows.Close()

	targets := []model.AllocationTarget{}
	for rows.Next() {
		var target model.AllocationTarget
		if err := rows.Scan(&target.Symbol, &target.TargetPct, &target.Anchored, &target.Locked); err != nil {
			return nil, fmt.Errorf("failed to scan allocation_target table results: %w", err)
		}
		targets = append(targets, target)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation_target table: %w", err)
	}

	return targets, nil
}

// SaveAllocationTarget upserts the plan entry for one asset.
func (s *AllocationRepository) SaveAllocationTarget(target model.AllocationTarget) error {
	upsertQuery := `
        INSERT INTO allocation_target (id, asset, target_pct, anchored, locked)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(asset) DO UPDATE SET
            target_pct = excluded.target_pct,
            anchored = excluded.anchored,
            locked = excluded.locked
    `

	_, err := s.db.Exec(upsertQuery,
		uuid.New().String(),
		target.Symbol,
		target.TargetPct,
		target.Anchored,
		target.Locked,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert into allocation_target table: %w", err)
	}

	return nil
}

// DeleteAllocationTarget removes one asset from the plan.
// Returns the number of rows affected so callers can distinguish a missing symbol.
func (s *AllocationRepository) DeleteAllocationTarget(symbol string) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM allocation_target WHERE asset = ?`, symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from allocation_target table: %w", err)
	}

	return result.RowsAffected()
}
