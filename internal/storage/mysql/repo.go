package mysql

import (
	"context"
	"database/sql"

	"drivent_booking/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) EnrollmentByUser(ctx context.Context, userID int64) (domain.Enrollment, error) {
	var e domain.Enrollment
	err := r.db.QueryRowContext(ctx, enrollmentByUserSQL, userID).
		Scan(&e.ID, &e.UserID, &e.Name, &e.Address, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return domain.Enrollment{}, domain.ErrNotFound
	}
	return e, err
}

func (r *Repo) TicketByEnrollment(ctx context.Context, enrollmentID int64) (domain.Ticket, error) {
	var t domain.Ticket
	var status string
	err := r.db.QueryRowContext(ctx, ticketByEnrollmentSQL, enrollmentID).Scan(
		&t.ID,
		&t.EnrollmentID,
		&status,
		&t.Type.ID,
		&t.Type.Name,
		&t.Type.Price,
		&t.Type.IsRemote,
		&t.Type.IncludesHotel,
	)
	if err == sql.ErrNoRows {
		return domain.Ticket{}, domain.ErrNotFound
	}
	t.Status = domain.TicketStatus(status)
	return t, err
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) HotelWithRooms(ctx context.Context, hotelID int64) (domain.HotelRooms, error) {
	var hr domain.HotelRooms
	err := r.db.QueryRowContext(ctx, hotelByIDSQL, hotelID).
		Scan(&hr.ID, &hr.Name, &hr.Image, &hr.CreatedAt, &hr.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.HotelRooms{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.HotelRooms{}, err
	}

	rows, err := r.db.QueryContext(ctx, roomsByHotelSQL, hotelID)
	if err != nil {
		return domain.HotelRooms{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Capacity, &rm.HotelID, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return domain.HotelRooms{}, err
		}
		hr.Rooms = append(hr.Rooms, rm)
	}
	return hr, rows.Err()
}

func (r *Repo) RoomByID(ctx context.Context, roomID int64) (domain.Room, error) {
	var rm domain.Room
	err := r.db.QueryRowContext(ctx, roomByIDSQL, roomID).
		Scan(&rm.ID, &rm.Name, &rm.Capacity, &rm.HotelID, &rm.CreatedAt, &rm.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.Room{}, domain.ErrNotFound
	}
	return rm, err
}

func (r *Repo) CountBookings(ctx context.Context, roomID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countBookingsSQL, roomID).Scan(&n)
	return n, err
}

func (r *Repo) BookingByUser(ctx context.Context, userID int64) (domain.UserBooking, error) {
	var b domain.UserBooking
	err := r.db.QueryRowContext(ctx, bookingByUserSQL, userID).Scan(
		&b.ID,
		&b.Room.ID,
		&b.Room.Name,
		&b.Room.Capacity,
		&b.Room.HotelID,
		&b.Room.CreatedAt,
		&b.Room.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return domain.UserBooking{}, domain.ErrNotFound
	}
	return b, err
}

// checkRoomTx re-runs the capacity check under the row lock taken by
// roomForUpdateSQL. Both writes go through it, so two requests racing
// for the last slot serialize on the room row and the loser fails.
func checkRoomTx(ctx context.Context, tx *sql.Tx, roomID int64) error {
	var capacity int
	err := tx.QueryRowContext(ctx, roomForUpdateSQL, roomID).Scan(&capacity)
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	var n int
	if err := tx.QueryRowContext(ctx, countBookingsSQL, roomID).Scan(&n); err != nil {
		return err
	}
	if n >= capacity {
		return domain.ErrRoomUnavailable
	}
	return nil
}

func (r *Repo) CreateBooking(ctx context.Context, userID, roomID int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := checkRoomTx(ctx, tx, roomID); err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, insertBookingSQL, userID, roomID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

func (r *Repo) UpdateBooking(ctx context.Context, bookingID, userID, newRoomID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := checkRoomTx(ctx, tx, newRoomID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, updateBookingSQL, newRoomID, bookingID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

func (r *Repo) UserIDByToken(ctx context.Context, token string) (int64, error) {
	var userID int64
	err := r.db.QueryRowContext(ctx, sessionByTokenSQL, token).Scan(&userID)
	if err == sql.ErrNoRows {
		return 0, domain.ErrNotFound
	}
	return userID, err
}
