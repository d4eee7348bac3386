package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"oceanview/internal/models"
)

const dateLayout = "2006-01-02"

// UpsertRoom inserts a room or refreshes its static attributes. Status is
// never touched on conflict: availability is owned by the reservation
// lifecycle, not by inventory reloads.
func (db *DB) UpsertRoom(ctx context.Context, room *models.Room) error {
	query := `INSERT INTO rooms (room_number, room_type, rate_cents, status, description, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)
              ON CONFLICT(room_number) DO UPDATE SET
                  room_type = excluded.room_type,
                  rate_cents = excluded.rate_cents,
                  description = excluded.description,
                  updated_at = excluded.updated_at`
	now := time.Now()
	status := room.Status
	if status == "" {
		status = models.RoomAvailable
	}
	if _, err := db.ExecContext(ctx, query,
		room.RoomNumber, string(room.RoomType), room.RateCents, string(status), room.Description, now, now,
	); err != nil {
		return fmt.Errorf("failed to upsert room: %w", err)
	}

	var id int64
	if err := db.QueryRowContext(ctx, `SELECT id FROM rooms WHERE room_number = ?`, room.RoomNumber).Scan(&id); err != nil {
		return fmt.Errorf("failed to load upserted room id: %w", err)
	}
	room.ID = id
	return nil
}

const roomColumns = `id, room_number, room_type, rate_cents, status, description, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }) (*models.Room, error) {
	var room models.Room
	var roomType, status string
	if err := row.Scan(
		&room.ID, &room.RoomNumber, &roomType, &room.RateCents, &status, &room.Description,
		&room.CreatedAt, &room.UpdatedAt,
	); err != nil {
		return nil, err
	}
	room.RoomType = models.RoomType(roomType)
	room.Status = models.RoomStatus(status)
	return &room, nil
}

func (db *DB) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	row := db.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id)
	room, err := scanRoom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

func (db *DB) GetAllRooms(ctx context.Context) ([]*models.Room, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY room_number`)
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}
	defer rows.Close()
	return collectRooms(rows)
}

func (db *DB) GetRoomsByType(ctx context.Context, roomType models.RoomType, onlyAvailable bool) ([]*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE room_type = ?`
	args := []any{string(roomType)}
	if onlyAvailable {
		query += ` AND status = ?`
		args = append(args, string(models.RoomAvailable))
	}
	query += ` ORDER BY room_number`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms by type: %w", err)
	}
	defer rows.Close()
	return collectRooms(rows)
}

func collectRooms(rows *sql.Rows) ([]*models.Room, error) {
	var rooms []*models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (db *DB) GetAvailableRoomCount(ctx context.Context, roomType models.RoomType) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rooms WHERE room_type = ? AND status = ?`,
		string(roomType), string(models.RoomAvailable),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count available rooms: %w", err)
	}
	return count, nil
}

func (db *DB) GetRoomTypes(ctx context.Context) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT DISTINCT room_type FROM rooms ORDER BY room_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to get room types: %w", err)
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan room type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// ReleaseRoom transitions Occupied back to Available as a standalone
// conditional update.
func (db *DB) ReleaseRoom(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE rooms SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(models.RoomAvailable), time.Now(), id, string(models.RoomOccupied),
	)
	if err != nil {
		return fmt.Errorf("failed to release room: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRoomNotOccupied
	}
	return nil
}

// reserveRoomTx conditionally holds a room inside an open transaction.
// The WHERE status clause plus the affected-row check is what prevents two
// concurrent creates from double-booking the same room.
func reserveRoomTx(ctx context.Context, tx *sql.Tx, roomID int64, now time.Time) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE rooms SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(models.RoomOccupied), now, roomID, string(models.RoomAvailable),
	)
	if err != nil {
		return fmt.Errorf("failed to reserve room: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRoomNotAvailable
	}
	return nil
}

func releaseRoomTx(ctx context.Context, tx *sql.Tx, roomID int64, now time.Time) error {
	// Idempotent inside a transition: a room already Available is not an
	// error, the net state is what the transition requires.
	_, err := tx.ExecContext(ctx,
		`UPDATE rooms SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(models.RoomAvailable), now, roomID, string(models.RoomOccupied),
	)
	if err != nil {
		return fmt.Errorf("failed to release room: %w", err)
	}
	return nil
}

func (db *DB) GetTotalRoomCount(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return count, nil
}

func (db *DB) GetOccupiedRoomCount(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rooms WHERE status = ?`, string(models.RoomOccupied),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count occupied rooms: %w", err)
	}
	return count, nil
}

// GetRoomOccupancyReport returns room counts grouped by type and status.
func (db *DB) GetRoomOccupancyReport(ctx context.Context) ([]models.RoomOccupancy, error) {
	query := `SELECT room_type, status, COUNT(*), SUM(rate_cents)
              FROM rooms GROUP BY room_type, status ORDER BY room_type, status`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get occupancy report: %w", err)
	}
	defer rows.Close()

	var report []models.RoomOccupancy
	for rows.Next() {
		var row models.RoomOccupancy
		var roomType, status string
		if err := rows.Scan(&roomType, &status, &row.RoomCount, &row.TotalRateCents); err != nil {
			return nil, fmt.Errorf("failed to scan occupancy row: %w", err)
		}
		row.RoomType = models.RoomType(roomType)
		row.Status = models.RoomStatus(status)
		report = append(report, row)
	}
	return report, rows.Err()
}
