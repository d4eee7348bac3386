package service

import (
	"context"
	"time"

	"oceanview/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) UpsertRoom(ctx context.Context, room *models.Room) error {
	return m.Called(ctx, room).Error(0)
}
func (m *mockRepo) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}
func (m *mockRepo) GetAllRooms(ctx context.Context) ([]*models.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}
func (m *mockRepo) GetRoomsByType(ctx context.Context, roomType models.RoomType, onlyAvailable bool) ([]*models.Room, error) {
	args := m.Called(ctx, roomType, onlyAvailable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}
func (m *mockRepo) GetAvailableRoomCount(ctx context.Context, roomType models.RoomType) (int, error) {
	args := m.Called(ctx, roomType)
	return args.Int(0), args.Error(1)
}
func (m *mockRepo) GetRoomTypes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *mockRepo) ReleaseRoom(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockRepo) GetTotalRoomCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *mockRepo) GetOccupiedRoomCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *mockRepo) GetRoomOccupancyReport(ctx context.Context) ([]models.RoomOccupancy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RoomOccupancy), args.Error(1)
}
func (m *mockRepo) NextReservationNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *mockRepo) CreateReservation(ctx context.Context, r *models.Reservation) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockRepo) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}
func (m *mockRepo) GetReservationByNumber(ctx context.Context, number string) (*models.Reservation, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}
func (m *mockRepo) ListReservations(ctx context.Context) ([]*models.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Reservation), args.Error(1)
}
func (m *mockRepo) TransitionReservation(ctx context.Context, id int64, to models.ReservationStatus) error {
	return m.Called(ctx, id, to).Error(0)
}
func (m *mockRepo) GetTotalReservationCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *mockRepo) GetActiveReservationCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *mockRepo) GetReservationCountsByStatus(ctx context.Context) (map[models.ReservationStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.ReservationStatus]int), args.Error(1)
}
func (m *mockRepo) CreateBill(ctx context.Context, b *models.Bill) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockRepo) GetBillByReservationID(ctx context.Context, reservationID int64) (*models.Bill, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bill), args.Error(1)
}
func (m *mockRepo) ListBills(ctx context.Context) ([]*models.Bill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bill), args.Error(1)
}
func (m *mockRepo) GetTotalRevenueCents(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockRepo) GetRevenueByRoomType(ctx context.Context) ([]models.RevenueByType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RevenueByType), args.Error(1)
}
func (m *mockRepo) GetTotalBillCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *mockRepo) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *mockRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

type mockEventBus struct {
	mock.Mock
}

func (m *mockEventBus) PublishJSON(eventType string, payload interface{}) error {
	return m.Called(eventType, payload).Error(0)
}

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) GetSession(ctx context.Context, token string) (*models.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}
func (m *mockSessions) SetSession(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}
func (m *mockSessions) ClearSession(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}
func (m *mockSessions) CheckRateLimit(ctx context.Context, actor string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, actor, limit, window)
	return args.Bool(0), args.Error(1)
}
