package service

import (
	"context"
	"time"

	"oceanview/internal/database"
	"oceanview/internal/domain"
	"oceanview/internal/events"
	"oceanview/internal/metrics"
	"oceanview/internal/models"
	"oceanview/internal/validation"

	"github.com/rs/zerolog"
)

type ReservationService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewReservationService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *ReservationService {
	return &ReservationService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreateReservationInput carries the raw guest-facing fields of a new
// reservation before validation.
type CreateReservationInput struct {
	GuestName     string `json:"guest_name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
	RoomType      string `json:"room_type"`
	RoomID        int64  `json:"room_id"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	CreatedBy     int64  `json:"-"`
}

// Create validates the input, resolves the room, allocates a reservation
// number and persists the reservation with the room hold in one atomic
// unit. With a RoomID the caller's chosen room is used: an unknown id is
// ErrNotFound and an occupied one ErrRoomNotAvailable. Without one, any
// available room of the requested type is picked.
//
// Validation is fail-fast in a fixed order: guest name, address, contact
// number, room type, check-in, check-out.
func (s *ReservationService) Create(ctx context.Context, input CreateReservationInput) (*models.Reservation, error) {
	if err := validation.GuestName(input.GuestName); err != nil {
		return nil, err
	}
	if err := validation.Address(input.Address); err != nil {
		return nil, err
	}
	if err := validation.ContactNumber(input.ContactNumber); err != nil {
		return nil, err
	}
	if err := validation.RoomType(input.RoomType); err != nil {
		return nil, err
	}

	checkIn, checkOut, err := validation.ParseStayDates(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}

	nights := validation.Nights(checkIn, checkOut)

	if input.RoomID != 0 {
		room, err := s.repo.GetRoom(ctx, input.RoomID)
		if err != nil {
			return nil, err
		}
		if room.Status != models.RoomAvailable {
			metrics.IncConflict("room_taken")
			return nil, database.ErrRoomNotAvailable
		}

		r, err := s.place(ctx, input, room, checkIn, checkOut, nights)
		if err == database.ErrRoomNotAvailable {
			metrics.IncConflict("room_taken")
		}
		return r, err
	}

	roomType, _ := models.ParseRoomType(input.RoomType)
	rooms, err := s.repo.GetRoomsByType(ctx, roomType, true)
	if err != nil {
		return nil, err
	}

	// Candidates are attempted in order; a concurrent create can steal a
	// room between the listing and the hold, which surfaces as
	// ErrRoomNotAvailable and moves us to the next room.
	for _, room := range rooms {
		r, err := s.place(ctx, input, room, checkIn, checkOut, nights)
		if err == database.ErrRoomNotAvailable {
			continue
		}
		return r, err
	}

	metrics.IncConflict("room_taken")
	return nil, database.ErrRoomNotAvailable
}

// place allocates a number and writes the reservation with the hold on the
// given room.
func (s *ReservationService) place(ctx context.Context, input CreateReservationInput, room *models.Room, checkIn, checkOut time.Time, nights int) (*models.Reservation, error) {
	number, err := s.repo.NextReservationNumber(ctx)
	if err != nil {
		return nil, err
	}

	r := &models.Reservation{
		ReservationNumber: number,
		GuestName:         input.GuestName,
		Address:           input.Address,
		ContactNumber:     input.ContactNumber,
		RoomID:            room.ID,
		RoomNumber:        room.RoomNumber,
		RoomType:          room.RoomType,
		CheckIn:           checkIn,
		CheckOut:          checkOut,
		Nights:            nights,
		RateCents:         room.RateCents,
		TotalCents:        int64(nights) * room.RateCents,
		Status:            models.StatusConfirmed,
		CreatedBy:         input.CreatedBy,
	}

	if err := s.repo.CreateReservation(ctx, r); err != nil {
		return nil, err
	}

	metrics.IncReservationCreated()
	s.logger.Info().
		Str("reservation_number", r.ReservationNumber).
		Str("room_number", r.RoomNumber).
		Int("nights", r.Nights).
		Msg("reservation created")
	s.publishEvent(events.EventReservationCreated, r, input.CreatedBy)
	return r, nil
}

// CheckOut moves a Confirmed reservation to Checked-Out and frees the room.
func (s *ReservationService) CheckOut(ctx context.Context, id int64, actorID int64) error {
	return s.transition(ctx, id, models.StatusCheckedOut, actorID)
}

// Cancel moves a Confirmed reservation to Cancelled and frees the room.
func (s *ReservationService) Cancel(ctx context.Context, id int64, actorID int64) error {
	return s.transition(ctx, id, models.StatusCancelled, actorID)
}

func (s *ReservationService) transition(ctx context.Context, id int64, to models.ReservationStatus, actorID int64) error {
	if err := s.repo.TransitionReservation(ctx, id, to); err != nil {
		if err == database.ErrInvalidTransition {
			metrics.IncConflict("invalid_transition")
		}
		return err
	}

	metrics.IncReservationTransition(string(to))

	r, err := s.repo.GetReservation(ctx, id)
	if err == nil {
		eventType := events.EventReservationCheckedOut
		if to == models.StatusCancelled {
			eventType = events.EventReservationCancelled
		}
		s.publishEvent(eventType, r, actorID)
	}

	return nil
}

func (s *ReservationService) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	return s.repo.GetReservation(ctx, id)
}

// GetByNumber looks a reservation up by its OVR number. A string that is
// not even shaped like a reservation number cannot match anything, so it
// reports not-found rather than a validation failure.
func (s *ReservationService) GetByNumber(ctx context.Context, number string) (*models.Reservation, error) {
	if err := validation.ReservationNumber(number); err != nil {
		return nil, database.ErrNotFound
	}
	return s.repo.GetReservationByNumber(ctx, number)
}

func (s *ReservationService) List(ctx context.Context) ([]*models.Reservation, error) {
	return s.repo.ListReservations(ctx)
}

func (s *ReservationService) publishEvent(eventType string, r *models.Reservation, actorID int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.ReservationEventPayload{
		ReservationID:     r.ID,
		ReservationNumber: r.ReservationNumber,
		GuestName:         r.GuestName,
		RoomID:            r.RoomID,
		RoomNumber:        r.RoomNumber,
		RoomType:          string(r.RoomType),
		Status:            string(r.Status),
		CheckIn:           r.CheckIn,
		CheckOut:          r.CheckOut,
		TotalCents:        r.TotalCents,
		ActorID:           actorID,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("reservation_id", r.ID).Msg("publish event error")
	}
}
