package database

import "errors"

var (
	// ErrNotFound is returned when a room, reservation, user or bill
	// does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrRoomNotAvailable is returned when a reservation targets a room
	// whose status is not Available at write time.
	ErrRoomNotAvailable = errors.New("room is not available")

	// ErrRoomNotOccupied is returned by a standalone release on a room
	// that is not currently Occupied.
	ErrRoomNotOccupied = errors.New("room is not occupied")

	// ErrBillExists is returned when a bill was already generated for
	// the reservation.
	ErrBillExists = errors.New("bill already generated for this reservation")

	// ErrInvalidTransition is returned when a reservation is already in
	// a terminal status, or lost the status race to a concurrent writer.
	ErrInvalidTransition = errors.New("invalid reservation status transition")

	// ErrUsernameTaken is returned on registration with a username that
	// already exists.
	ErrUsernameTaken = errors.New("username already exists")
)
