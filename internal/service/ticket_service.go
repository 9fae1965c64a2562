package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// Actor identifies the caller of a ticket operation.
type Actor struct {
	UserID string
	Role   domain.Role
}

// TicketPatch carries the mutable fields of an update request. Which fields
// take effect depends on the actor's role.
type TicketPatch struct {
	Title    *string
	Request  *string
	Response *string
	Status   *string
}

// TicketService coordinates the ticket lifecycle and its role gates.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher}
}

// Create opens a ticket at the pending status. Only user-role actors may
// create; the owner is fixed to the creator and never changes.
func (s *TicketService) Create(ctx context.Context, actor Actor, title, request string) (*domain.Ticket, error) {
	if !auth.Can(actor.Role, auth.ActionTicketCreate) {
		return nil, apperrors.NewForbidden("only users can create tickets")
	}

	ticket := &domain.Ticket{
		OwnerID: actor.UserID,
		Title:   strings.TrimSpace(title),
		Request: strings.TrimSpace(request),
		Status:  domain.TicketStatusPending,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, actor, events.Event{
		Type: events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{
			TicketID: ticket.ID,
			Title:    ticket.Title,
		},
	})
	return ticket, nil
}

// List returns tickets visible to the actor. Users see only their own;
// admins see all. When no status filter is supplied the listing defaults to
// pending for both roles; callers wanting the full history must query each
// status explicitly.
func (s *TicketService) List(ctx context.Context, actor Actor, status *domain.TicketStatus) ([]domain.Ticket, error) {
	if status == nil {
		pending := domain.TicketStatusPending
		status = &pending
	}
	filter := repository.TicketFilter{Status: status}
	if !auth.Can(actor.Role, auth.ActionTicketListAll) {
		filter.OwnerID = &actor.UserID
	}
	tickets, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, nil
}

// GetByID fetches one ticket. Users may fetch only their own tickets;
// admins may fetch any.
func (s *TicketService) GetByID(ctx context.Context, actor Actor, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && ticket.OwnerID != actor.UserID {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// Update applies a role-gated patch. Owners may rewrite title/request while
// the ticket is still pending; admins may set the response unconditionally
// and the status only to a valid enum value (anything else is silently
// ignored). Admins never touch title/request.
func (s *TicketService) Update(ctx context.Context, actor Actor, ticketID string, patch TicketPatch) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	oldStatus := ticket.Status

	switch actor.Role {
	case domain.RoleAdmin:
		if patch.Response != nil {
			ticket.Response = *patch.Response
		}
		if patch.Status != nil {
			if next := domain.TicketStatus(*patch.Status); next.Valid() {
				ticket.Status = next
			}
		}
	default:
		if ticket.OwnerID != actor.UserID {
			return nil, apperrors.NewForbidden("access denied")
		}
		if ticket.Status != domain.TicketStatusPending {
			return nil, apperrors.NewInvalidState("cannot update ticket after review")
		}
		if patch.Title != nil && *patch.Title != "" {
			ticket.Title = *patch.Title
		}
		if patch.Request != nil && *patch.Request != "" {
			ticket.Request = *patch.Request
		}
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, actor, events.Event{
		Type: events.EventTicketUpdated,
		Payload: events.TicketUpdatedPayload{
			TicketID:  ticket.ID,
			OldStatus: oldStatus,
			NewStatus: ticket.Status,
		},
	})
	return ticket, nil
}

// Delete removes a ticket. Only the owning user may delete, and only while
// the ticket is still pending. Admins have no delete path.
func (s *TicketService) Delete(ctx context.Context, actor Actor, ticketID string) error {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleUser || ticket.OwnerID != actor.UserID {
		return apperrors.NewForbidden("access denied")
	}
	if ticket.Status != domain.TicketStatusPending {
		return apperrors.NewInvalidState("cannot delete ticket after review")
	}

	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket")
		}
		return err
	}

	s.publish(ctx, actor, events.Event{
		Type:    events.EventTicketDeleted,
		Payload: events.TicketDeletedPayload{TicketID: ticketID},
	})
	return nil
}

func (s *TicketService) loadTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket")
		}
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) publish(ctx context.Context, actor Actor, event events.Event) {
	event.Actor = events.Actor{UserID: actor.UserID, Role: actor.Role}
	publishEvent(ctx, s.dispatcher, event)
}
