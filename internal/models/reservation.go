package models

import "time"

// ReservationStatus is the reservation lifecycle state. Confirmed is the
// only initial state; Checked-Out and Cancelled are terminal.
type ReservationStatus string

const (
	StatusConfirmed  ReservationStatus = "Confirmed"
	StatusCheckedOut ReservationStatus = "Checked-Out"
	StatusCancelled  ReservationStatus = "Cancelled"
)

// ParseReservationStatus converts a raw string to a ReservationStatus.
func ParseReservationStatus(raw string) (ReservationStatus, bool) {
	switch ReservationStatus(raw) {
	case StatusConfirmed, StatusCheckedOut, StatusCancelled:
		return ReservationStatus(raw), true
	}
	return "", false
}

func (s ReservationStatus) IsValid() bool {
	_, ok := ParseReservationStatus(string(s))
	return ok
}

// IsTerminal reports whether no further transition is permitted.
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

func (s ReservationStatus) String() string { return string(s) }

type Reservation struct {
	ID                int64             `json:"id"`
	ReservationNumber string            `json:"reservation_number"`
	GuestName         string            `json:"guest_name"`
	Address           string            `json:"address"`
	ContactNumber     string            `json:"contact_number"`
	RoomID            int64             `json:"room_id"`
	RoomNumber        string            `json:"room_number"`
	RoomType          RoomType          `json:"room_type"`
	CheckIn           time.Time         `json:"check_in"`
	CheckOut          time.Time         `json:"check_out"`
	Nights            int               `json:"nights"`
	RateCents         int64             `json:"rate_cents"`
	TotalCents        int64             `json:"total_cents"`
	Status            ReservationStatus `json:"status"`
	CreatedBy         int64             `json:"created_by"`
	CreatedAt         time.Time         `json:"created_at"`
}
