package models

import (
	"fmt"
	"time"
)

// Bill is the immutable billing record for a reservation. All guest and
// room fields are snapshots taken at generation time so the bill stays
// stable even if the reservation or room is edited later.
type Bill struct {
	ID                int64     `json:"id"`
	ReservationID     int64     `json:"reservation_id"`
	ReservationNumber string    `json:"reservation_number"`
	GuestName         string    `json:"guest_name"`
	RoomType          RoomType  `json:"room_type"`
	RoomNumber        string    `json:"room_number"`
	CheckIn           time.Time `json:"check_in"`
	CheckOut          time.Time `json:"check_out"`
	Nights            int       `json:"nights"`
	RateCents         int64     `json:"rate_cents"`
	TotalCents        int64     `json:"total_cents"`
	BillDate          time.Time `json:"bill_date"`
	GeneratedBy       int64     `json:"generated_by"`
}

// FormatCents renders an amount in cents as a decimal string, e.g. 15000 -> "150.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
