package domain

import "errors"

var (
	// ErrNotFound covers every missing record: enrollment, ticket, hotel,
	// room, booking, or an empty hotel catalog.
	ErrNotFound = errors.New("not found")

	// ErrPaymentRequired is the catalog-browsing face of a failed
	// eligibility check (ticket unpaid, remote, or hotel-excluded).
	ErrPaymentRequired = errors.New("payment required")

	// ErrBookingForbidden is the booking-context face of the same rule,
	// and also covers "no booking to reassign".
	ErrBookingForbidden = errors.New("booking forbidden")

	// ErrRoomUnavailable means the room exists but is at capacity.
	ErrRoomUnavailable = errors.New("room unavailable")
)
