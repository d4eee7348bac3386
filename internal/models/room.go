package models

import "time"

// RoomType is the closed set of room categories the hotel sells.
type RoomType string

const (
	RoomTypeSingle RoomType = "Single"
	RoomTypeDouble RoomType = "Double"
	RoomTypeDeluxe RoomType = "Deluxe"
	RoomTypeSuite  RoomType = "Suite"
)

// RoomTypes returns all room types in display order.
func RoomTypes() []RoomType {
	return []RoomType{RoomTypeSingle, RoomTypeDouble, RoomTypeDeluxe, RoomTypeSuite}
}

// ParseRoomType converts a raw string to a RoomType. ok is false for
// anything outside the closed set, including empty strings.
func ParseRoomType(raw string) (RoomType, bool) {
	switch RoomType(raw) {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeDeluxe, RoomTypeSuite:
		return RoomType(raw), true
	}
	return "", false
}

func (t RoomType) IsValid() bool {
	_, ok := ParseRoomType(string(t))
	return ok
}

func (t RoomType) String() string { return string(t) }

// RoomStatus tracks whether a room can accept a new reservation.
type RoomStatus string

const (
	RoomAvailable RoomStatus = "Available"
	RoomOccupied  RoomStatus = "Occupied"
)

func (s RoomStatus) IsValid() bool {
	return s == RoomAvailable || s == RoomOccupied
}

type Room struct {
	ID          int64      `yaml:"id" json:"id"`
	RoomNumber  string     `yaml:"room_number" json:"room_number"`
	RoomType    RoomType   `yaml:"room_type" json:"room_type"`
	RateCents   int64      `yaml:"rate_cents" json:"rate_cents"`
	Status      RoomStatus `yaml:"status" json:"status"`
	Description string     `yaml:"description" json:"description"`
	CreatedAt   time.Time  `yaml:"-" json:"created_at"`
	UpdatedAt   time.Time  `yaml:"-" json:"updated_at"`
}
