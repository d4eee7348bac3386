package database

import (
	"context"
	"fmt"
	"time"
)

// NextReservationNumber allocates the next OVR-YYYY-NNNN identifier for the
// current calendar year. The sequence resets per year at the data layer and
// nothing is cached in process.
func (db *DB) NextReservationNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	seq, err := db.nextSequenceValue(ctx, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("OVR-%d-%04d", year, seq), nil
}

// nextSequenceValue performs the increment-and-read as one statement so
// concurrent allocations for the same year can never observe the same value.
func (db *DB) nextSequenceValue(ctx context.Context, year int) (int64, error) {
	query := `INSERT INTO reservation_sequences (year, last_value) VALUES (?, 1)
              ON CONFLICT(year) DO UPDATE SET last_value = last_value + 1
              RETURNING last_value`
	var value int64
	if err := db.QueryRowContext(ctx, query, year).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to allocate reservation sequence: %w", err)
	}
	return value, nil
}
