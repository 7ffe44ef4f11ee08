package app

import (
	"context"

	"drivent_booking/internal/domain"
)

// checkEligibility verifies the caller holds a paid, non-remote,
// hotel-inclusive ticket. Missing enrollment or ticket surfaces as the
// repository's ErrNotFound. The rule itself is identical on every path;
// callers pick which error a failed rule becomes (payment-required for
// catalog browsing, booking-forbidden for booking writes).
func checkEligibility(ctx context.Context, repo domain.BookingRepository, userID int64, ineligible error) error {
	enr, err := repo.EnrollmentByUser(ctx, userID)
	if err != nil {
		return err
	}
	t, err := repo.TicketByEnrollment(ctx, enr.ID)
	if err != nil {
		return err
	}
	if !t.Eligible() {
		return ineligible
	}
	return nil
}
