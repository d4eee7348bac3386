// Package validation holds the field-level rules applied before any
// reservation or account data reaches storage. All checks are pure
// functions: malformed or empty input is a failed check, never a panic.
package validation

import (
	"regexp"
	"strings"
	"time"

	"oceanview/internal/models"
)

// Error is a failed validation with a reason safe to show to the caller.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func fail(field, reason string) error {
	return &Error{Field: field, Reason: reason}
}

var (
	guestNameRe         = regexp.MustCompile(`^[a-zA-Z\s]{2,100}$`)
	contactNumberRe     = regexp.MustCompile(`^(\+94|0)?[0-9]{9,10}$`)
	usernameRe          = regexp.MustCompile(`^[a-zA-Z0-9]{3,50}$`)
	reservationNumberRe = regexp.MustCompile(`^OVR-\d{4}-\d{4}$`)
)

// GuestName requires 2-100 characters, letters and spaces only.
func GuestName(name string) error {
	if strings.TrimSpace(name) == "" || !guestNameRe.MatchString(name) {
		return fail("guest_name", "Invalid guest name. Only letters and spaces allowed (2-100 characters).")
	}
	return nil
}

// Address requires a trimmed length of 5-255 characters.
func Address(address string) error {
	trimmed := strings.TrimSpace(address)
	if len(trimmed) < 5 || len(trimmed) > 255 {
		return fail("address", "Invalid address. Minimum 5 characters required.")
	}
	return nil
}

// ContactNumber accepts Sri Lankan numbers: optional +94 or leading 0,
// then 9-10 digits.
func ContactNumber(contact string) error {
	if !contactNumberRe.MatchString(strings.TrimSpace(contact)) {
		return fail("contact_number", "Invalid contact number. Enter a valid Sri Lankan phone number.")
	}
	return nil
}

// RoomType admits only the closed room type set.
func RoomType(roomType string) error {
	if _, ok := models.ParseRoomType(roomType); !ok {
		return fail("room_type", "Invalid room type. Please select Single, Double, Deluxe, or Suite.")
	}
	return nil
}

// CheckInDate requires check-in to be today or later, compared by calendar
// day in the location of now.
func CheckInDate(checkIn, now time.Time) error {
	if checkIn.IsZero() {
		return fail("check_in_date", "Invalid check-in date. Date must be today or a future date.")
	}
	today := truncateToDay(now)
	if truncateToDay(checkIn).Before(today) {
		return fail("check_in_date", "Invalid check-in date. Date must be today or a future date.")
	}
	return nil
}

// CheckOutDate requires check-out strictly after check-in.
func CheckOutDate(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() || !truncateToDay(checkOut).After(truncateToDay(checkIn)) {
		return fail("check_out_date", "Invalid check-out date. Check-out must be after check-in date.")
	}
	return nil
}

// Username requires 3-50 alphanumeric characters.
func Username(username string) error {
	if !usernameRe.MatchString(username) {
		return fail("username", "Invalid username. Use 3-50 letters or digits.")
	}
	return nil
}

// Password requires a minimum of 5 characters.
func Password(password string) error {
	if len(password) < 5 {
		return fail("password", "Invalid password. Minimum 5 characters required.")
	}
	return nil
}

// ReservationNumber requires the exact OVR-YYYY-NNNN shape.
func ReservationNumber(number string) error {
	if !reservationNumberRe.MatchString(number) {
		return fail("reservation_number", "Invalid reservation number format. Expected OVR-YYYY-NNNN.")
	}
	return nil
}

// DateLayout is the wire format for check-in and check-out dates.
const DateLayout = "2006-01-02"

// ParseStayDates parses and validates the check-in/check-out pair as
// received on the wire. Unparseable input fails the same way an
// out-of-range date does.
func ParseStayDates(checkInRaw, checkOutRaw string) (checkIn, checkOut time.Time, err error) {
	checkIn, parseErr := time.Parse(DateLayout, strings.TrimSpace(checkInRaw))
	if parseErr != nil {
		return time.Time{}, time.Time{}, fail("check_in_date", "Invalid check-in date. Date must be today or a future date.")
	}
	checkOut, parseErr = time.Parse(DateLayout, strings.TrimSpace(checkOutRaw))
	if parseErr != nil {
		return time.Time{}, time.Time{}, fail("check_out_date", "Invalid check-out date. Check-out must be after check-in date.")
	}
	if err := CheckInDate(checkIn, time.Now()); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if err := CheckOutDate(checkIn, checkOut); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return checkIn, checkOut, nil
}

// Nights returns the whole calendar days between check-in and check-out.
// Callers that validated the dates first always get a value >= 1.
func Nights(checkIn, checkOut time.Time) int {
	in := truncateToDay(checkIn)
	out := truncateToDay(checkOut)
	return int(out.Sub(in).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
