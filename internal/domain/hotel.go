package domain

import "time"

type Hotel struct {
	ID        int64
	Name      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Room struct {
	ID        int64
	Name      string
	Capacity  int
	HotelID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HotelRooms is the read model for a single hotel with its rooms.
type HotelRooms struct {
	Hotel
	Rooms []Room
}
