package service

import (
	"context"

	"oceanview/internal/domain"
	"oceanview/internal/models"

	"github.com/rs/zerolog"
)

type RoomService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRoomService(repo domain.Repository, logger *zerolog.Logger) *RoomService {
	return &RoomService{
		repo:   repo,
		logger: logger,
	}
}

// Seed loads the configured room inventory. Reruns refresh rates and
// descriptions without touching room availability.
func (s *RoomService) Seed(ctx context.Context, rooms []models.Room) error {
	for i := range rooms {
		room := rooms[i]
		if err := s.repo.UpsertRoom(ctx, &room); err != nil {
			return err
		}
	}
	s.logger.Info().Int("rooms", len(rooms)).Msg("room inventory seeded")
	return nil
}

func (s *RoomService) List(ctx context.Context) ([]*models.Room, error) {
	return s.repo.GetAllRooms(ctx)
}

func (s *RoomService) ListByType(ctx context.Context, roomType models.RoomType, onlyAvailable bool) ([]*models.Room, error) {
	return s.repo.GetRoomsByType(ctx, roomType, onlyAvailable)
}

// AvailableCount reports how many rooms of a type are free. A string that
// is not a room type simply has zero available rooms.
func (s *RoomService) AvailableCount(ctx context.Context, roomType string) (int, error) {
	parsed, ok := models.ParseRoomType(roomType)
	if !ok {
		return 0, nil
	}
	return s.repo.GetAvailableRoomCount(ctx, parsed)
}

// Types lists the distinct room types currently in inventory, which can be
// narrower than the full catalogue when a category has no rooms seeded.
func (s *RoomService) Types(ctx context.Context) ([]string, error) {
	return s.repo.GetRoomTypes(ctx)
}

func (s *RoomService) Get(ctx context.Context, id int64) (*models.Room, error) {
	return s.repo.GetRoom(ctx, id)
}

// Release frees a room outside the reservation lifecycle, for manual
// correction by staff.
func (s *RoomService) Release(ctx context.Context, id int64) error {
	return s.repo.ReleaseRoom(ctx, id)
}
