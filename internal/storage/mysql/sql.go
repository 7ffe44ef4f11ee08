package mysql

// -----------------------------------------------------------------------------
// ELIGIBILITY READS (tables owned by the ticketing subsystem)
// -----------------------------------------------------------------------------

const enrollmentByUserSQL = `
SELECT id, user_id, name, address, created_at
FROM enrollments
WHERE user_id = ?
`

// Ticket joined with its type; the type decides remote/hotel entitlements.
const ticketByEnrollmentSQL = `
SELECT
  t.id,
  t.enrollment_id,
  t.status,
  tt.id,
  tt.name,
  tt.price,
  tt.is_remote,
  tt.includes_hotel
FROM tickets t
JOIN ticket_types tt ON tt.id = t.ticket_type_id
WHERE t.enrollment_id = ?
`

// -----------------------------------------------------------------------------
// CATALOG READS
// -----------------------------------------------------------------------------

const listHotelsSQL = `
SELECT id, name, image, created_at, updated_at
FROM hotels
ORDER BY id
`

const hotelByIDSQL = `
SELECT id, name, image, created_at, updated_at
FROM hotels
WHERE id = ?
`

const roomsByHotelSQL = `
SELECT id, name, capacity, hotel_id, created_at, updated_at
FROM rooms
WHERE hotel_id = ?
ORDER BY id
`

const roomByIDSQL = `
SELECT id, name, capacity, hotel_id, created_at, updated_at
FROM rooms
WHERE id = ?
`

// -----------------------------------------------------------------------------
// BOOKING READS
// -----------------------------------------------------------------------------

const countBookingsSQL = `
SELECT COUNT(*)
FROM bookings
WHERE room_id = ?
`

const bookingByUserSQL = `
SELECT
  b.id,
  r.id,
  r.name,
  r.capacity,
  r.hotel_id,
  r.created_at,
  r.updated_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
WHERE b.user_id = ?
`

// -----------------------------------------------------------------------------
// BOOKING WRITES
// -----------------------------------------------------------------------------

// Locks the room row for the duration of the transaction so the
// count-then-insert below cannot race a concurrent booking on the same
// room past its capacity.
const roomForUpdateSQL = `
SELECT capacity
FROM rooms
WHERE id = ?
FOR UPDATE
`

const insertBookingSQL = `
INSERT INTO bookings (user_id, room_id)
VALUES (?, ?)
`

const updateBookingSQL = `
UPDATE bookings
SET room_id = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND user_id = ?
`

// -----------------------------------------------------------------------------
// SESSIONS
// -----------------------------------------------------------------------------

const sessionByTokenSQL = `
SELECT user_id
FROM sessions
WHERE token = ?
`
