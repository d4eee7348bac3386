package domain

import (
	"context"
	"time"

	"oceanview/internal/models"
)

// Repository is the persistence surface the services depend on. The SQLite
// implementation lives in internal/database.
type Repository interface {
	UpsertRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id int64) (*models.Room, error)
	GetAllRooms(ctx context.Context) ([]*models.Room, error)
	GetRoomsByType(ctx context.Context, roomType models.RoomType, onlyAvailable bool) ([]*models.Room, error)
	GetAvailableRoomCount(ctx context.Context, roomType models.RoomType) (int, error)
	GetRoomTypes(ctx context.Context) ([]string, error)
	ReleaseRoom(ctx context.Context, id int64) error
	GetTotalRoomCount(ctx context.Context) (int, error)
	GetOccupiedRoomCount(ctx context.Context) (int, error)
	GetRoomOccupancyReport(ctx context.Context) ([]models.RoomOccupancy, error)

	NextReservationNumber(ctx context.Context) (string, error)
	CreateReservation(ctx context.Context, r *models.Reservation) error
	GetReservation(ctx context.Context, id int64) (*models.Reservation, error)
	GetReservationByNumber(ctx context.Context, number string) (*models.Reservation, error)
	ListReservations(ctx context.Context) ([]*models.Reservation, error)
	TransitionReservation(ctx context.Context, id int64, to models.ReservationStatus) error
	GetTotalReservationCount(ctx context.Context) (int, error)
	GetActiveReservationCount(ctx context.Context) (int, error)
	GetReservationCountsByStatus(ctx context.Context) (map[models.ReservationStatus]int, error)

	CreateBill(ctx context.Context, b *models.Bill) error
	GetBillByReservationID(ctx context.Context, reservationID int64) (*models.Bill, error)
	ListBills(ctx context.Context) ([]*models.Bill, error)
	GetTotalRevenueCents(ctx context.Context) (int64, error)
	GetRevenueByRoomType(ctx context.Context) ([]models.RevenueByType, error)
	GetTotalBillCount(ctx context.Context) (int, error)

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// SessionRepository stores login sessions and per-actor rate limit windows.
// Backed by Redis in production with an in-memory fallback.
type SessionRepository interface {
	GetSession(ctx context.Context, token string) (*models.Session, error)
	SetSession(ctx context.Context, session *models.Session) error
	ClearSession(ctx context.Context, token string) error
	CheckRateLimit(ctx context.Context, actor string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// Notifier delivers a staff notification; implementations decide the channel.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}
