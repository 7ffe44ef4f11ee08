package domain

import "time"

type Booking struct {
	ID        int64
	UserID    int64
	RoomID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserBooking is the read model for "the caller's current booking":
// the booking id with its room embedded.
type UserBooking struct {
	ID   int64
	Room Room
}
