package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"oceanview/internal/models"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// CreateBill persists a bill with its existence check in one transaction.
// The UNIQUE constraint on reservation_id is the authoritative guard; the
// count query is only the fast path for a friendly error.
func (db *DB) CreateBill(ctx context.Context, b *models.Bill) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bills WHERE reservation_id = ?`, b.ReservationID,
	).Scan(&existing)
	if err != nil {
		return fmt.Errorf("failed to check existing bill: %w", err)
	}
	if existing > 0 {
		return ErrBillExists
	}

	now := time.Now()
	query := `INSERT INTO bills (
                reservation_id, reservation_number, guest_name, room_type, room_number,
                check_in, check_out, nights, rate_cents, total_cents, bill_date, generated_by
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, query,
		b.ReservationID,
		b.ReservationNumber,
		b.GuestName,
		string(b.RoomType),
		b.RoomNumber,
		b.CheckIn.Format(dateLayout),
		b.CheckOut.Format(dateLayout),
		b.Nights,
		b.RateCents,
		b.TotalCents,
		now,
		b.GeneratedBy,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrBillExists
		}
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bill: %w", err)
	}

	b.ID = id
	b.BillDate = now
	return nil
}

const billColumns = `id, reservation_id, reservation_number, guest_name, room_type, room_number,
           check_in, check_out, nights, rate_cents, total_cents, bill_date, generated_by`

func scanBill(row interface{ Scan(...any) error }) (*models.Bill, error) {
	var b models.Bill
	var roomType, checkIn, checkOut string
	if err := row.Scan(
		&b.ID, &b.ReservationID, &b.ReservationNumber, &b.GuestName, &roomType, &b.RoomNumber,
		&checkIn, &checkOut, &b.Nights, &b.RateCents, &b.TotalCents, &b.BillDate, &b.GeneratedBy,
	); err != nil {
		return nil, err
	}

	b.RoomType = models.RoomType(roomType)

	var err error
	if b.CheckIn, err = time.Parse(dateLayout, checkIn); err != nil {
		return nil, fmt.Errorf("failed to parse bill check-in date %s: %w", checkIn, err)
	}
	if b.CheckOut, err = time.Parse(dateLayout, checkOut); err != nil {
		return nil, fmt.Errorf("failed to parse bill check-out date %s: %w", checkOut, err)
	}
	return &b, nil
}

func (db *DB) GetBillByReservationID(ctx context.Context, reservationID int64) (*models.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE reservation_id = ?`
	b, err := scanBill(db.QueryRowContext(ctx, query, reservationID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return b, nil
}

func (db *DB) ListBills(ctx context.Context) ([]*models.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills ORDER BY bill_date DESC, id DESC`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (db *DB) GetTotalRevenueCents(ctx context.Context) (int64, error) {
	var revenue int64
	err := db.QueryRowContext(ctx, `SELECT IFNULL(SUM(total_cents), 0) FROM bills`).Scan(&revenue)
	if err != nil {
		return 0, fmt.Errorf("failed to get total revenue: %w", err)
	}
	return revenue, nil
}

func (db *DB) GetRevenueByRoomType(ctx context.Context) ([]models.RevenueByType, error) {
	query := `SELECT room_type, COUNT(*), SUM(nights), SUM(total_cents)
              FROM bills GROUP BY room_type ORDER BY SUM(total_cents) DESC`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue by room type: %w", err)
	}
	defer rows.Close()

	var report []models.RevenueByType
	for rows.Next() {
		var row models.RevenueByType
		var roomType string
		if err := rows.Scan(&roomType, &row.BillCount, &row.TotalNights, &row.RevenueCents); err != nil {
			return nil, fmt.Errorf("failed to scan revenue row: %w", err)
		}
		row.RoomType = models.RoomType(roomType)
		report = append(report, row)
	}
	return report, rows.Err()
}

func (db *DB) GetTotalBillCount(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bills`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bills: %w", err)
	}
	return count, nil
}
