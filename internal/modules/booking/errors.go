package booking

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrInvalidInterval = errors.New("check-out must be after check-in")
	ErrInvalidRate     = errors.New("room has a non-positive nightly rate")
	ErrConflict        = errors.New("room is already booked for these dates")
	ErrRoomUnavailable = errors.New("room is not available")
	ErrForbidden       = errors.New("booking does not belong to caller")
	ErrInvalidState    = errors.New("illegal booking status transition")
	ErrNotFound        = errors.New("booking not found")
)
