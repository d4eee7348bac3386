package service

import (
	"context"

	"oceanview/internal/database"
	"oceanview/internal/domain"
	"oceanview/internal/events"
	"oceanview/internal/metrics"
	"oceanview/internal/models"

	"github.com/rs/zerolog"
)

type BillingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBillingService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BillingService {
	return &BillingService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// GenerateBill creates the single bill for a reservation. The total is
// nights times the rate stored on the reservation, so later room rate
// changes never move an issued bill. Billing does not require the guest to
// have checked out.
func (s *BillingService) GenerateBill(ctx context.Context, reservationID int64, actorID int64) (*models.Bill, error) {
	r, err := s.repo.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	bill := &models.Bill{
		ReservationID:     r.ID,
		ReservationNumber: r.ReservationNumber,
		GuestName:         r.GuestName,
		RoomType:          r.RoomType,
		RoomNumber:        r.RoomNumber,
		CheckIn:           r.CheckIn,
		CheckOut:          r.CheckOut,
		Nights:            r.Nights,
		RateCents:         r.RateCents,
		TotalCents:        int64(r.Nights) * r.RateCents,
		GeneratedBy:       actorID,
	}

	if err := s.repo.CreateBill(ctx, bill); err != nil {
		if err == database.ErrBillExists {
			metrics.IncConflict("duplicate_bill")
		}
		return nil, err
	}

	metrics.IncBillGenerated()
	s.logger.Info().
		Str("reservation_number", bill.ReservationNumber).
		Str("total", models.FormatCents(bill.TotalCents)).
		Msg("bill generated")

	if s.eventBus != nil {
		payload := events.BillEventPayload{
			BillID:            bill.ID,
			ReservationID:     bill.ReservationID,
			ReservationNumber: bill.ReservationNumber,
			GuestName:         bill.GuestName,
			TotalCents:        bill.TotalCents,
			ActorID:           actorID,
		}
		if err := s.eventBus.PublishJSON(events.EventBillGenerated, payload); err != nil {
			s.logger.Error().Err(err).Int64("bill_id", bill.ID).Msg("publish event error")
		}
	}

	return bill, nil
}

func (s *BillingService) GetByReservationID(ctx context.Context, reservationID int64) (*models.Bill, error) {
	return s.repo.GetBillByReservationID(ctx, reservationID)
}

func (s *BillingService) List(ctx context.Context) ([]*models.Bill, error) {
	return s.repo.ListBills(ctx)
}
