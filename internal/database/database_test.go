package database

import (
	"context"
	"testing"
	"time"

	"oceanview/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	logger := zerolog.Nop()
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedRoom(t *testing.T, db *DB, number string, roomType models.RoomType, rateCents int64) *models.Room {
	t.Helper()
	room := &models.Room{
		RoomNumber: number,
		RoomType:   roomType,
		RateCents:  rateCents,
	}
	require.NoError(t, db.UpsertRoom(context.Background(), room))
	require.NotZero(t, room.ID)
	return room
}

func seedReservation(t *testing.T, db *DB, room *models.Room) *models.Reservation {
	t.Helper()
	ctx := context.Background()

	number, err := db.NextReservationNumber(ctx)
	require.NoError(t, err)

	checkIn := time.Now().AddDate(0, 0, 1)
	checkOut := checkIn.AddDate(0, 0, 2)

	r := &models.Reservation{
		ReservationNumber: number,
		GuestName:         "Alice Fernando",
		Address:           "12 Galle Road, Colombo",
		ContactNumber:     "0771234567",
		RoomID:            room.ID,
		RoomType:          room.RoomType,
		CheckIn:           checkIn,
		CheckOut:          checkOut,
		Nights:            2,
		RateCents:         room.RateCents,
		TotalCents:        2 * room.RateCents,
		Status:            models.StatusConfirmed,
		CreatedBy:         1,
	}
	require.NoError(t, db.CreateReservation(ctx, r))
	require.NotZero(t, r.ID)
	return r
}

func TestNewDB(t *testing.T) {
	db := setupTestDB(t)

	// Schema should be queryable right after construction.
	count, err := db.GetTotalRoomCount(context.Background())
	require.NoError(t, err)
	require.Zero(t, count)
}
