package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"oceanview/internal/models"
)

// CreateReservation persists a reservation and marks its room Occupied as
// one atomic unit. If the room is no longer Available the whole unit rolls
// back and ErrRoomNotAvailable is returned.
func (db *DB) CreateReservation(ctx context.Context, r *models.Reservation) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now()

	// Hold the room first; a taken room aborts before the insert.
	if err := reserveRoomTx(ctx, tx, r.RoomID, now); err != nil {
		return err
	}

	query := `INSERT INTO reservations (
                reservation_number, guest_name, address, contact_number, room_id, room_type,
                check_in, check_out, nights, rate_cents, total_cents, status, created_by, created_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, query,
		r.ReservationNumber,
		r.GuestName,
		r.Address,
		r.ContactNumber,
		r.RoomID,
		string(r.RoomType),
		r.CheckIn.Format(dateLayout),
		r.CheckOut.Format(dateLayout),
		r.Nights,
		r.RateCents,
		r.TotalCents,
		string(r.Status),
		r.CreatedBy,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reservation: %w", err)
	}

	r.ID = id
	r.CreatedAt = now
	return nil
}

const reservationColumns = `r.id, r.reservation_number, r.guest_name, r.address, r.contact_number,
           r.room_id, rm.room_number, r.room_type, r.check_in, r.check_out,
           r.nights, r.rate_cents, r.total_cents, r.status, r.created_by, r.created_at`

func scanReservation(row interface{ Scan(...any) error }) (*models.Reservation, error) {
	var r models.Reservation
	var roomType, status, checkIn, checkOut string
	if err := row.Scan(
		&r.ID, &r.ReservationNumber, &r.GuestName, &r.Address, &r.ContactNumber,
		&r.RoomID, &r.RoomNumber, &roomType, &checkIn, &checkOut,
		&r.Nights, &r.RateCents, &r.TotalCents, &status, &r.CreatedBy, &r.CreatedAt,
	); err != nil {
		return nil, err
	}

	r.RoomType = models.RoomType(roomType)
	r.Status = models.ReservationStatus(status)

	var err error
	if r.CheckIn, err = time.Parse(dateLayout, checkIn); err != nil {
		return nil, fmt.Errorf("failed to parse check-in date %s: %w", checkIn, err)
	}
	if r.CheckOut, err = time.Parse(dateLayout, checkOut); err != nil {
		return nil, fmt.Errorf("failed to parse check-out date %s: %w", checkOut, err)
	}
	return &r, nil
}

func (db *DB) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
              FROM reservations r JOIN rooms rm ON rm.id = r.room_id
              WHERE r.id = ?`
	r, err := scanReservation(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return r, nil
}

func (db *DB) GetReservationByNumber(ctx context.Context, number string) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
              FROM reservations r JOIN rooms rm ON rm.id = r.room_id
              WHERE r.reservation_number = ?`
	r, err := scanReservation(db.QueryRowContext(ctx, query, number))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation by number: %w", err)
	}
	return r, nil
}

func (db *DB) ListReservations(ctx context.Context) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
              FROM reservations r JOIN rooms rm ON rm.id = r.room_id
              ORDER BY r.created_at DESC, r.id DESC`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

// TransitionReservation moves a Confirmed reservation to a terminal status
// and releases its room in the same transaction. The status update is
// conditional on the current status, so a concurrent transition loses the
// race cleanly with ErrInvalidTransition instead of overwriting.
func (db *DB) TransitionReservation(ctx context.Context, id int64, to models.ReservationStatus) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var roomID int64
	var current string
	err = tx.QueryRowContext(ctx,
		`SELECT room_id, status FROM reservations WHERE id = ?`, id,
	).Scan(&roomID, &current)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load reservation for transition: %w", err)
	}

	if models.ReservationStatus(current).IsTerminal() {
		return ErrInvalidTransition
	}

	now := time.Now()
	result, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id = ? AND status = ?`,
		string(to), id, string(models.StatusConfirmed),
	)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrInvalidTransition
	}

	if err := releaseRoomTx(ctx, tx, roomID, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transition: %w", err)
	}
	return nil
}

func (db *DB) GetTotalReservationCount(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}
	return count, nil
}

func (db *DB) GetActiveReservationCount(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations WHERE status = ?`, string(models.StatusConfirmed),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active reservations: %w", err)
	}
	return count, nil
}

func (db *DB) GetReservationCountsByStatus(ctx context.Context) (map[models.ReservationStatus]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT status, COUNT(*) FROM reservations GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count reservations by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ReservationStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[models.ReservationStatus(status)] = count
	}
	return counts, rows.Err()
}
