package domain

import "time"

// Enrollment, Ticket and TicketType are owned by the ticketing subsystem;
// this service only reads them to decide hotel eligibility.

type Enrollment struct {
	ID        int64
	UserID    int64
	Name      string
	Address   string
	CreatedAt time.Time
}

type TicketStatus string

const (
	TicketReserved TicketStatus = "RESERVED"
	TicketPaid     TicketStatus = "PAID"
)

type Ticket struct {
	ID           int64
	EnrollmentID int64
	Status       TicketStatus
	Type         TicketType
}

type TicketType struct {
	ID            int64
	Name          string
	Price         int64 // cents
	IsRemote      bool
	IncludesHotel bool
}

// Eligible reports whether the ticket grants hotel access.
func (t Ticket) Eligible() bool {
	return t.Status == TicketPaid && t.Type.IncludesHotel && !t.Type.IsRemote
}
