package app

import (
	"context"
	"fmt"
	"time"

	"drivent_booking/internal/domain"
)

type QueryService struct {
	repo     domain.BookingRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.BookingRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// ListHotels returns the whole catalog. Requires an eligible ticket;
// an empty catalog is ErrNotFound, never an empty slice.
func (s *QueryService) ListHotels(ctx context.Context, userID int64) ([]domain.Hotel, error) {
	if err := checkEligibility(ctx, s.repo, userID, domain.ErrPaymentRequired); err != nil {
		return nil, err
	}

	const key = "hotels:all"
	var hotels []domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &hotels); ok && len(hotels) > 0 {
		return hotels, nil
	}

	hotels, err := s.repo.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	if len(hotels) == 0 {
		return nil, domain.ErrNotFound
	}
	_ = s.cache.Set(ctx, key, hotels, int(s.cacheTTL.Seconds()))
	return hotels, nil
}

// HotelRooms returns one hotel with its rooms. Same eligibility gate as
// ListHotels; unknown hotel is ErrNotFound.
func (s *QueryService) HotelRooms(ctx context.Context, userID, hotelID int64) (domain.HotelRooms, error) {
	if err := checkEligibility(ctx, s.repo, userID, domain.ErrPaymentRequired); err != nil {
		return domain.HotelRooms{}, err
	}

	key := fmt.Sprintf("hotel:%d:rooms", hotelID)
	var hr domain.HotelRooms
	if ok, _ := s.cache.Get(ctx, key, &hr); ok {
		return hr, nil
	}

	hr, err := s.repo.HotelWithRooms(ctx, hotelID)
	if err != nil {
		return domain.HotelRooms{}, err
	}
	_ = s.cache.Set(ctx, key, hr, int(s.cacheTTL.Seconds()))
	return hr, nil
}

// Booking returns the caller's current booking with its room embedded.
// Bookings are never cached; occupancy must read fresh.
func (s *QueryService) Booking(ctx context.Context, userID int64) (domain.UserBooking, error) {
	return s.repo.BookingByUser(ctx, userID)
}
