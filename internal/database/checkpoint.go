package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jroosing/apphelpers/internal/uptime"
)

// ErrNoCheckpoint is returned by LoadCheckpoint on a fresh database.
var ErrNoCheckpoint = errors.New("no accumulator checkpoint stored")

// Checkpoint is a persisted accumulator state.
type Checkpoint struct {
	State   uptime.State
	SavedAt time.Time
}

// SaveCheckpoint replaces the stored accumulator state.
func (db *DB) SaveCheckpoint(ctx context.Context, state uptime.State, at time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO accumulator_state (id, cumulative_seconds, last_observed_seconds, wraps, saved_at_ms)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			cumulative_seconds = excluded.cumulative_seconds,
			last_observed_seconds = excluded.last_observed_seconds,
			wraps = excluded.wraps,
			saved_at_ms = excluded.saved_at_ms
	`, int64(state.CumulativeSeconds), int64(state.LastObservedSeconds), int64(state.Wraps), at.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint returns the stored accumulator state or ErrNoCheckpoint.
func (db *DB) LoadCheckpoint(ctx context.Context) (Checkpoint, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var cumulative, last, wraps, savedMs int64
	err := db.conn.QueryRowContext(ctx, `
		SELECT cumulative_seconds, last_observed_seconds, wraps, saved_at_ms
		FROM accumulator_state WHERE id = 1
	`).Scan(&cumulative, &last, &wraps, &savedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return Checkpoint{}, ErrNoCheckpoint
	}
	if err != nil {
		return Checkpoint{}, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	return Checkpoint{
		State: uptime.State{
			CumulativeSeconds:   uint64(cumulative),
			LastObservedSeconds: uint32(last),
			Wraps:               uint64(wraps),
		},
		SavedAt: time.UnixMilli(savedMs).UTC(),
	}, nil
}
