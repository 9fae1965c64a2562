package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

var (
	owner    = Actor{UserID: "user-1", Role: domain.RoleUser}
	stranger = Actor{UserID: "user-2", Role: domain.RoleUser}
	admin    = Actor{UserID: "admin-1", Role: domain.RoleAdmin}
)

func pendingTicket() *domain.Ticket {
	return &domain.Ticket{
		ID:      "ticket-1",
		OwnerID: "user-1",
		Title:   "VPN broken",
		Request: "cannot connect since monday",
		Status:  domain.TicketStatusPending,
	}
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func TestTicketService_CreateAndGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	tickets := new(MockTicketRepository)
	svc := NewTicketService(tickets, nil)

	tickets.On("Create", ctx, mock.AnythingOfType("*domain.Ticket")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Ticket).ID = "ticket-1"
	}).Return(nil)

	created, err := svc.Create(ctx, owner, "VPN broken", "cannot connect since monday")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusPending, created.Status)
	assert.Empty(t, created.Response)
	assert.Equal(t, "user-1", created.OwnerID)

	tickets.On("GetByID", ctx, "ticket-1").Return(created, nil)
	fetched, err := svc.GetByID(ctx, owner, "ticket-1")
	require.NoError(t, err)
	assert.Equal(t, "VPN broken", fetched.Title)
	assert.Equal(t, "cannot connect since monday", fetched.Request)
	assert.Equal(t, domain.TicketStatusPending, fetched.Status)
}

func TestTicketService_CreateRequiresUserRole(t *testing.T) {
	ctx := context.Background()
	tickets := new(MockTicketRepository)
	svc := NewTicketService(tickets, nil)

	_, err := svc.Create(ctx, admin, "title", "request")
	assert.Equal(t, "FORBIDDEN", errCode(t, err))
	tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTicketService_ListDefaultsToPending(t *testing.T) {
	ctx := context.Background()
	pending := domain.TicketStatusPending

	t.Run("user is scoped to own tickets", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		svc := NewTicketService(tickets, nil)

		tickets.On("List", ctx, repository.TicketFilter{OwnerID: &owner.UserID, Status: &pending}).
			Return([]domain.Ticket{*pendingTicket()}, nil)

		result, err := svc.List(ctx, owner, nil)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "user-1", result[0].OwnerID)
		tickets.AssertExpectations(t)
	})

	t.Run("admin sees all owners but still defaults to pending", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		svc := NewTicketService(tickets, nil)

		tickets.On("List", ctx, repository.TicketFilter{Status: &pending}).
			Return([]domain.Ticket{}, nil)

		result, err := svc.List(ctx, admin, nil)
		require.NoError(t, err)
		assert.NotNil(t, result)
		tickets.AssertExpectations(t)
	})

	t.Run("explicit filter overrides the default", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		svc := NewTicketService(tickets, nil)

		reviewed := domain.TicketStatusReviewed
		tickets.On("List", ctx, repository.TicketFilter{OwnerID: &owner.UserID, Status: &reviewed}).
			Return([]domain.Ticket{}, nil)

		_, err := svc.List(ctx, owner, &reviewed)
		require.NoError(t, err)
		tickets.AssertExpectations(t)
	})
}

func TestTicketService_NonOwnerIsForbidden(t *testing.T) {
	ctx := context.Background()
	tickets := new(MockTicketRepository)
	svc := NewTicketService(tickets, nil)

	tickets.On("GetByID", ctx, "ticket-1").Return(pendingTicket(), nil)

	_, err := svc.GetByID(ctx, stranger, "ticket-1")
	assert.Equal(t, "FORBIDDEN", errCode(t, err))

	title := "hijacked"
	_, err = svc.Update(ctx, stranger, "ticket-1", TicketPatch{Title: &title})
	assert.Equal(t, "FORBIDDEN", errCode(t, err))

	err = svc.Delete(ctx, stranger, "ticket-1")
	assert.Equal(t, "FORBIDDEN", errCode(t, err))

	tickets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	tickets.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTicketService_AdminMayFetchAnyTicket(t *testing.T) {
	ctx := context.Background()
	tickets := new(MockTicketRepository)
	svc := NewTicketService(tickets, nil)

	tickets.On("GetByID", ctx, "ticket-1").Return(pendingTicket(), nil)

	fetched, err := svc.GetByID(ctx, admin, "ticket-1")
	require.NoError(t, err)
	assert.Equal(t, "ticket-1", fetched.ID)
}

func TestTicketService_OwnerUpdateBlockedAfterReview(t *testing.T) {
	ctx := context.Background()
	tickets := new(MockTicketRepository)
	svc := NewTicketService(tickets, nil)

	onReview := pendingTicket()
	onReview.Status = domain.TicketStatusOnReview
	tickets.On("GetByID", ctx, "ticket-1").Return(onReview, nil)

	title := "new title"
	_, err := svc.Update(ctx, owner, "ticket-1", TicketPatch{Title: &title})
	assert.Equal(t, "INVALID_STATE", errCode(t, err))
	assert.Equal(t, "VPN broken", onReview.Title)
	tickets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTicketService_OwnerUpdatesTitleAndRequestWhilePending(t *testing.T) {
	ctx := context.Background()
	tickets := new(MockTicketRepository)
	svc := NewTicketService(tickets, nil)

	ticket := pendingTicket()
	tickets.On("GetByID", ctx, "ticket-1").Return(ticket, nil)
	tickets.On("Update", ctx, ticket).Return(nil)

	title := "VPN still broken"
	request := "now fails with a new error"
	updated, err := svc.Update(ctx, owner, "ticket-1", TicketPatch{Title: &title, Request: &request})
	require.NoError(t, err)
	assert.Equal(t, "VPN still broken", updated.Title)
	assert.Equal(t, "now fails with a new error", updated.Request)
	assert.Equal(t, domain.TicketStatusPending, updated.Status)
	assert.Empty(t, updated.Response)
}

func TestTicketService_AdminUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("bogus status is ignored but response still applies", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		svc := NewTicketService(tickets, nil)

		ticket := pendingTicket()
		tickets.On("GetByID", ctx, "ticket-1").Return(ticket, nil)
		tickets.On("Update", ctx, ticket).Return(nil)

		response := "restart the client"
		bogus := "bogus"
		updated, err := svc.Update(ctx, admin, "ticket-1", TicketPatch{Response: &response, Status: &bogus})
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusPending, updated.Status)
		assert.Equal(t, "restart the client", updated.Response)
	})

	t.Run("valid status transition applies", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		svc := NewTicketService(tickets, nil)

		ticket := pendingTicket()
		tickets.On("GetByID", ctx, "ticket-1").Return(ticket, nil)
		tickets.On("Update", ctx, ticket).Return(nil)

		status := string(domain.TicketStatusOnReview)
		updated, err := svc.Update(ctx, admin, "ticket-1", TicketPatch{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusOnReview, updated.Status)
	})

	t.Run("title and request are not admin-editable", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		svc := NewTicketService(tickets, nil)

		ticket := pendingTicket()
		tickets.On("GetByID", ctx, "ticket-1").Return(ticket, nil)
		tickets.On("Update", ctx, ticket).Return(nil)

		title := "rewritten"
		request := "rewritten"
		updated, err := svc.Update(ctx, admin, "ticket-1", TicketPatch{Title: &title, Request: &request})
		require.NoError(t, err)
		assert.Equal(t, "VPN broken", updated.Title)
		assert.Equal(t, "cannot connect since monday", updated.Request)
	})
}

func TestTicketService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes pending ticket", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		svc := NewTicketService(tickets, nil)

		tickets.On("GetByID", ctx, "ticket-1").Return(pendingTicket(), nil)
		tickets.On("Delete", ctx, "ticket-1").Return(nil)

		require.NoError(t, svc.Delete(ctx, owner, "ticket-1"))
		tickets.AssertExpectations(t)
	})

	t.Run("blocked once reviewed", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		svc := NewTicketService(tickets, nil)

		reviewed := pendingTicket()
		reviewed.Status = domain.TicketStatusReviewed
		tickets.On("GetByID", ctx, "ticket-1").Return(reviewed, nil)

		err := svc.Delete(ctx, owner, "ticket-1")
		assert.Equal(t, "INVALID_STATE", errCode(t, err))
	})

	t.Run("admin has no delete path", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		svc := NewTicketService(tickets, nil)

		tickets.On("GetByID", ctx, "ticket-1").Return(pendingTicket(), nil)

		err := svc.Delete(ctx, admin, "ticket-1")
		assert.Equal(t, "FORBIDDEN", errCode(t, err))
	})

	t.Run("second delete reports not found", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		svc := NewTicketService(tickets, nil)

		tickets.On("GetByID", ctx, "ticket-1").Return(nil, pgx.ErrNoRows)

		err := svc.Delete(ctx, owner, "ticket-1")
		assert.Equal(t, "NOT_FOUND", errCode(t, err))
	})
}
