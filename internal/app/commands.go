package app

import (
	"context"
	"errors"

	"drivent_booking/internal/adapters/observability"
	"drivent_booking/internal/domain"
)

type BookingService struct {
	repo domain.BookingRepository
}

func NewBookingService(r domain.BookingRepository) *BookingService {
	return &BookingService{repo: r}
}

// RoomStatus loads a room and verifies it still has a free slot.
// ErrNotFound when the room does not exist, ErrRoomUnavailable when the
// booking count has reached capacity. Read-only; the authoritative check
// is re-run inside the storage transaction on every write.
func (s *BookingService) RoomStatus(ctx context.Context, roomID int64) (domain.Room, error) {
	room, err := s.repo.RoomByID(ctx, roomID)
	if err != nil {
		return domain.Room{}, err
	}
	n, err := s.repo.CountBookings(ctx, roomID)
	if err != nil {
		return domain.Room{}, err
	}
	if n >= room.Capacity {
		return domain.Room{}, domain.ErrRoomUnavailable
	}
	return room, nil
}

// AssignBooking creates the caller's booking. Order matters: an
// ineligible ticket must fail before any room lookup happens.
func (s *BookingService) AssignBooking(ctx context.Context, userID, roomID int64) (int64, error) {
	if err := checkEligibility(ctx, s.repo, userID, domain.ErrBookingForbidden); err != nil {
		observability.ObserveBooking("assign", "rejected")
		return 0, err
	}
	if _, err := s.RoomStatus(ctx, roomID); err != nil {
		observability.ObserveBooking("assign", "rejected")
		return 0, err
	}
	id, err := s.repo.CreateBooking(ctx, userID, roomID)
	if err != nil {
		observability.ObserveBooking("assign", "failed")
		return 0, err
	}
	observability.ObserveBooking("assign", "ok")
	return id, nil
}

// ChangeBooking moves the caller's existing booking to another room.
// The booking to mutate is always the caller's own; a path id naming
// someone else's booking is rejected rather than silently remapped.
func (s *BookingService) ChangeBooking(ctx context.Context, userID, bookingID, newRoomID int64) (int64, error) {
	if _, err := s.RoomStatus(ctx, newRoomID); err != nil {
		observability.ObserveBooking("change", "rejected")
		return 0, err
	}
	b, err := s.repo.BookingByUser(ctx, userID)
	if err != nil {
		observability.ObserveBooking("change", "rejected")
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrBookingForbidden
		}
		return 0, err
	}
	if b.ID != bookingID {
		observability.ObserveBooking("change", "rejected")
		return 0, domain.ErrBookingForbidden
	}
	if err := s.repo.UpdateBooking(ctx, b.ID, userID, newRoomID); err != nil {
		observability.ObserveBooking("change", "failed")
		return 0, err
	}
	observability.ObserveBooking("change", "ok")
	return b.ID, nil
}
