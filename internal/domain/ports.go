package domain

import "context"

type BookingRepository interface {
	// Eligibility reads (owned by the ticketing subsystem)
	EnrollmentByUser(ctx context.Context, userID int64) (Enrollment, error)
	TicketByEnrollment(ctx context.Context, enrollmentID int64) (Ticket, error)

	// Catalog reads
	ListHotels(ctx context.Context) ([]Hotel, error)
	HotelWithRooms(ctx context.Context, hotelID int64) (HotelRooms, error)
	RoomByID(ctx context.Context, roomID int64) (Room, error)

	// Booking reads
	CountBookings(ctx context.Context, roomID int64) (int, error)
	BookingByUser(ctx context.Context, userID int64) (UserBooking, error)

	// Booking writes. Both run the capacity check and the mutation inside
	// one transaction: they return ErrNotFound when the room does not
	// exist and ErrRoomUnavailable when it is already full.
	CreateBooking(ctx context.Context, userID, roomID int64) (int64, error)
	UpdateBooking(ctx context.Context, bookingID, userID, newRoomID int64) error
}

// SessionStore resolves a bearer token to the user it was issued to.
type SessionStore interface {
	UserIDByToken(ctx context.Context, token string) (int64, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
