package database

import (
	"context"
	"testing"

	"oceanview/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billFor(r *models.Reservation, room *models.Room) *models.Bill {
	return &models.Bill{
		ReservationID:     r.ID,
		ReservationNumber: r.ReservationNumber,
		GuestName:         r.GuestName,
		RoomType:          r.RoomType,
		RoomNumber:        room.RoomNumber,
		CheckIn:           r.CheckIn,
		CheckOut:          r.CheckOut,
		Nights:            r.Nights,
		RateCents:         r.RateCents,
		TotalCents:        r.TotalCents,
		GeneratedBy:       1,
	}
}

func TestCreateBill(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	room := seedRoom(t, db, "101", models.RoomTypeSingle, 8000)
	r := seedReservation(t, db, room)

	bill := billFor(r, room)
	require.NoError(t, db.CreateBill(ctx, bill))
	assert.NotZero(t, bill.ID)
	assert.False(t, bill.BillDate.IsZero())

	got, err := db.GetBillByReservationID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ReservationNumber, got.ReservationNumber)
	assert.Equal(t, int64(16000), got.TotalCents)
}

func TestCreateBill_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	room := seedRoom(t, db, "101", models.RoomTypeSingle, 8000)
	r := seedReservation(t, db, room)

	require.NoError(t, db.CreateBill(ctx, billFor(r, room)))

	err := db.CreateBill(ctx, billFor(r, room))
	assert.ErrorIs(t, err, ErrBillExists)

	count, err := db.GetTotalBillCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGetBillByReservationID_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetBillByReservationID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRevenueRollups(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	single := seedRoom(t, db, "101", models.RoomTypeSingle, 8000)
	double := seedRoom(t, db, "201", models.RoomTypeDouble, 12000)

	r1 := seedReservation(t, db, single)
	r2 := seedReservation(t, db, double)
	require.NoError(t, db.CreateBill(ctx, billFor(r1, single)))
	require.NoError(t, db.CreateBill(ctx, billFor(r2, double)))

	total, err := db.GetTotalRevenueCents(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(16000+24000), total)

	byType, err := db.GetRevenueByRoomType(ctx)
	require.NoError(t, err)
	require.Len(t, byType, 2)

	rows := make(map[models.RoomType]models.RevenueByType)
	for _, row := range byType {
		rows[row.RoomType] = row
	}
	assert.Equal(t, int64(16000), rows[models.RoomTypeSingle].RevenueCents)
	assert.Equal(t, 2, rows[models.RoomTypeSingle].TotalNights)
	assert.Equal(t, 1, rows[models.RoomTypeDouble].BillCount)
}

func TestGetTotalRevenueCents_Empty(t *testing.T) {
	db := setupTestDB(t)

	total, err := db.GetTotalRevenueCents(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}
