package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jroosing/apphelpers/internal/uptime"
)

// RecordSample appends a sampler reading to the history.
func (db *DB) RecordSample(ctx context.Context, s uptime.Sample) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO samples (sampled_at_ms, raw_tick_ms, seconds, total_seconds, wrapped)
		VALUES (?, ?, ?, ?, ?)
	`, s.At.UnixMilli(), int64(s.RawTickMs), int64(s.Seconds), int64(s.TotalSeconds), boolToInt(s.Wrapped))
	if err != nil {
		return fmt.Errorf("failed to record sample: %w", err)
	}
	return nil
}

// RecentSamples returns up to limit samples, newest first.
func (db *DB) RecentSamples(ctx context.Context, limit int) ([]uptime.Sample, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT sampled_at_ms, raw_tick_ms, seconds, total_seconds, wrapped
		FROM samples
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	samples := make([]uptime.Sample, 0, limit)
	for rows.Next() {
		var atMs, raw, secs, total int64
		var wrapped int
		if err := rows.Scan(&atMs, &raw, &secs, &total, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to scan sample row: %w", err)
		}
		samples = append(samples, uptime.Sample{
			At: time.UnixMilli(atMs).UTC(),
			Reading: uptime.Reading{
				RawTickMs:    uint32(raw),
				Seconds:      uint32(secs),
				TotalSeconds: uint64(total),
				Wrapped:      intToBool(wrapped),
			},
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sample rows: %w", err)
	}

	return samples, nil
}

// CountSamples returns the number of stored samples.
func (db *DB) CountSamples(ctx context.Context) (int64, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var n int64
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM samples").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count samples: %w", err)
	}
	return n, nil
}

// PruneSamples keeps the newest keep samples and returns how many were removed.
func (db *DB) PruneSamples(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	res, err := db.conn.ExecContext(ctx, `
		DELETE FROM samples
		WHERE id NOT IN (SELECT id FROM samples ORDER BY id DESC LIMIT ?)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune samples: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read pruned row count: %w", err)
	}
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}
