package service

import (
	"context"
	"io"
	"testing"

	"oceanview/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_Summary(t *testing.T) {
	repo := new(mockRepo)
	logger := zerolog.New(io.Discard)
	svc := NewReportService(repo, &logger)
	ctx := context.Background()

	repo.On("GetTotalRoomCount", ctx).Return(10, nil)
	repo.On("GetOccupiedRoomCount", ctx).Return(4, nil)
	repo.On("GetRoomOccupancyReport", ctx).Return([]models.RoomOccupancy{
		{RoomType: models.RoomTypeSingle, Status: models.RoomOccupied, RoomCount: 4, TotalRateCents: 32000},
	}, nil)
	repo.On("GetTotalRevenueCents", ctx).Return(int64(120000), nil)
	repo.On("GetRevenueByRoomType", ctx).Return([]models.RevenueByType{
		{RoomType: models.RoomTypeSingle, BillCount: 5, TotalNights: 12, RevenueCents: 120000},
	}, nil)
	repo.On("GetTotalBillCount", ctx).Return(5, nil)
	repo.On("GetTotalReservationCount", ctx).Return(8, nil)
	repo.On("GetActiveReservationCount", ctx).Return(4, nil)
	repo.On("GetReservationCountsByStatus", ctx).Return(map[models.ReservationStatus]int{
		models.StatusConfirmed:  4,
		models.StatusCheckedOut: 3,
		models.StatusCancelled:  1,
	}, nil)
	for _, roomType := range models.RoomTypes() {
		repo.On("GetAvailableRoomCount", ctx, roomType).Return(1, nil)
	}

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 10, summary.TotalRooms)
	assert.Equal(t, 4, summary.OccupiedRooms)
	assert.Equal(t, 6, summary.AvailableRooms)
	assert.InDelta(t, 40.0, summary.OccupancyRate, 0.001)
	assert.Equal(t, int64(120000), summary.TotalRevenueCents)
	assert.Equal(t, 5, summary.TotalBills)
	assert.Equal(t, 4, summary.ReservationsByStatus[models.StatusConfirmed])
	assert.Len(t, summary.AvailableByType, 4)
}

func TestReportService_Summary_EmptyHotel(t *testing.T) {
	repo := new(mockRepo)
	logger := zerolog.New(io.Discard)
	svc := NewReportService(repo, &logger)
	ctx := context.Background()

	repo.On("GetTotalRoomCount", ctx).Return(0, nil)
	repo.On("GetOccupiedRoomCount", ctx).Return(0, nil)
	repo.On("GetRoomOccupancyReport", ctx).Return([]models.RoomOccupancy{}, nil)
	repo.On("GetTotalRevenueCents", ctx).Return(int64(0), nil)
	repo.On("GetRevenueByRoomType", ctx).Return([]models.RevenueByType{}, nil)
	repo.On("GetTotalBillCount", ctx).Return(0, nil)
	repo.On("GetTotalReservationCount", ctx).Return(0, nil)
	repo.On("GetActiveReservationCount", ctx).Return(0, nil)
	repo.On("GetReservationCountsByStatus", ctx).Return(map[models.ReservationStatus]int{}, nil)
	for _, roomType := range models.RoomTypes() {
		repo.On("GetAvailableRoomCount", ctx, roomType).Return(0, nil)
	}

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, summary.OccupancyRate)
	assert.Zero(t, summary.TotalRevenueCents)
}
