package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title   string `json:"title"`
	Request string `json:"request"`
}

// UpdateTicketRequest payload. Which fields take effect depends on the
// caller's role; the rest are ignored.
type UpdateTicketRequest struct {
	Title    *string `json:"title"`
	Request  *string `json:"request"`
	Response *string `json:"response"`
	Status   *string `json:"status"`
}

// TicketOwnerResponse is the populated owner summary.
type TicketOwnerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TicketResponse is the full ticket view.
type TicketResponse struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Request   string               `json:"request"`
	Response  string               `json:"response"`
	Status    domain.TicketStatus  `json:"status"`
	Owner     *TicketOwnerResponse `json:"user,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:        ticket.ID,
		Title:     ticket.Title,
		Request:   ticket.Request,
		Response:  ticket.Response,
		Status:    ticket.Status,
		CreatedAt: ticket.CreatedAt,
		UpdatedAt: ticket.UpdatedAt,
	}
	if ticket.Owner != nil {
		resp.Owner = &TicketOwnerResponse{
			ID:    ticket.Owner.ID,
			Name:  ticket.Owner.Name,
			Email: ticket.Owner.Email,
		}
	}
	return resp
}
