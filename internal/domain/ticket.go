package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusOnReview TicketStatus = "on review"
	TicketStatusReviewed TicketStatus = "reviewed"
)

// Valid reports whether the status is one of the declared enum values.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusPending, TicketStatusOnReview, TicketStatusReviewed:
		return true
	}
	return false
}

// TicketOwner is the populated owner summary embedded in ticket reads.
type TicketOwner struct {
	ID    string
	Name  string
	Email string
}

// Ticket is the aggregate for support requests. OwnerID is immutable after
// creation; Response starts empty and is admin-writable only.
type Ticket struct {
	ID        string
	OwnerID   string
	Title     string
	Request   string
	Response  string
	Status    TicketStatus
	Owner     *TicketOwner
	CreatedAt time.Time
	UpdatedAt time.Time
}
