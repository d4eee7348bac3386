package service

import (
	"context"

	"oceanview/internal/domain"
	"oceanview/internal/models"

	"github.com/rs/zerolog"
)

type ReportService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewReportService(repo domain.Repository, logger *zerolog.Logger) *ReportService {
	return &ReportService{
		repo:   repo,
		logger: logger,
	}
}

// Summary assembles the management rollup: occupancy, revenue and
// reservation counts. Each figure is read live from storage.
func (s *ReportService) Summary(ctx context.Context) (*models.ReportSummary, error) {
	summary := &models.ReportSummary{}

	var err error
	if summary.TotalRooms, err = s.repo.GetTotalRoomCount(ctx); err != nil {
		return nil, err
	}
	if summary.OccupiedRooms, err = s.repo.GetOccupiedRoomCount(ctx); err != nil {
		return nil, err
	}
	summary.AvailableRooms = summary.TotalRooms - summary.OccupiedRooms
	if summary.TotalRooms > 0 {
		summary.OccupancyRate = float64(summary.OccupiedRooms) / float64(summary.TotalRooms) * 100
	}

	if summary.Occupancy, err = s.repo.GetRoomOccupancyReport(ctx); err != nil {
		return nil, err
	}

	if summary.TotalRevenueCents, err = s.repo.GetTotalRevenueCents(ctx); err != nil {
		return nil, err
	}
	if summary.RevenueByType, err = s.repo.GetRevenueByRoomType(ctx); err != nil {
		return nil, err
	}
	if summary.TotalBills, err = s.repo.GetTotalBillCount(ctx); err != nil {
		return nil, err
	}

	if summary.TotalReservations, err = s.repo.GetTotalReservationCount(ctx); err != nil {
		return nil, err
	}
	if summary.ActiveReservations, err = s.repo.GetActiveReservationCount(ctx); err != nil {
		return nil, err
	}
	if summary.ReservationsByStatus, err = s.repo.GetReservationCountsByStatus(ctx); err != nil {
		return nil, err
	}

	summary.AvailableByType = make(map[models.RoomType]int, len(models.RoomTypes()))
	for _, roomType := range models.RoomTypes() {
		count, err := s.repo.GetAvailableRoomCount(ctx, roomType)
		if err != nil {
			return nil, err
		}
		summary.AvailableByType[roomType] = count
	}

	return summary, nil
}
