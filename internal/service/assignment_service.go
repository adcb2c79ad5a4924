package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/bitwharf/helpdesk/internal/domain"
	"github.com/bitwharf/helpdesk/internal/events"
	"github.com/bitwharf/helpdesk/internal/policy"
	"github.com/bitwharf/helpdesk/internal/repository"
	apperrors "github.com/bitwharf/helpdesk/pkg/util"
)

// AssignmentService handles ticket assignment operations.
type AssignmentService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Assign sets the ticket's assignee. The candidate must exist and must
// hold a role eligible for assignments.
func (s *AssignmentService) Assign(ctx context.Context, p domain.Principal, ticketID, assigneeID int64) (*domain.Ticket, error) {
	if policy.Check(p, policy.ActionModifyAssignment, nil) != policy.Allow {
		return nil, apperrors.NewForbidden()
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": assigneeID})
		}
		return nil, apperrors.MapError(err)
	}
	if err := policy.ValidateAssignee(assignee.Role); err != nil {
		return nil, err
	}

	if err := s.tickets.UpdateAssignment(ctx, ticket.ID, assignee.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	ticket.AssignedTo = &assignee.ID

	publishEvent(ctx, s.dispatcher, p, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Payload: events.TicketAssignedPayload{
			AssigneeID: assignee.ID,
		},
	})
	return ticket, nil
}
