package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bitwharf/helpdesk/internal/domain"
	"github.com/bitwharf/helpdesk/internal/events"
	"github.com/bitwharf/helpdesk/internal/ids"
	"github.com/bitwharf/helpdesk/internal/lifecycle"
	"github.com/bitwharf/helpdesk/internal/policy"
	"github.com/bitwharf/helpdesk/internal/repository"
	apperrors "github.com/bitwharf/helpdesk/pkg/util"
)

// TicketService coordinates ticket workflows: every operation resolves
// the policy decision first, then the domain validation, then exactly
// one persistence call.
type TicketService struct {
	tickets    repository.TicketRepository
	statusLog  repository.StatusLogRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo    repository.TicketRepository
	StatusLogRepo repository.StatusLogRepository
	Dispatcher    events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		statusLog:  deps.StatusLogRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create opens a new ticket on behalf of the principal.
func (s *TicketService) Create(ctx context.Context, p domain.Principal, input TicketCreateInput) (*domain.Ticket, error) {
	if policy.Check(p, policy.ActionCreateTicket, nil) != policy.Allow {
		return nil, apperrors.NewForbidden()
	}

	if input.Priority == "" {
		input.Priority = domain.TicketPriorityMedium
	}
	if err := lifecycle.ValidateNewTicket(lifecycle.NewTicketInput{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
	}); err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
		CreatedBy:   p.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, p, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Priority: ticket.Priority,
			Title:    ticket.Title,
		},
	})
	return ticket, nil
}

// List returns the tickets visible to the principal.
func (s *TicketService) List(ctx context.Context, p domain.Principal) ([]domain.Ticket, error) {
	// Listing is never denied; the scope narrows the result instead.
	scope := policy.ScopeFor(p)
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		CreatedBy:  scope.CreatedBy,
		AssignedTo: scope.AssignedTo,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// Get fetches one ticket, enforcing view rights.
func (s *TicketService) Get(ctx context.Context, p domain.Principal, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if policy.Check(p, policy.ActionViewTicket, ticket) != policy.Allow {
		return nil, apperrors.NewForbidden()
	}
	return ticket, nil
}

// ChangeStatus moves a ticket along the lifecycle and records the audit
// entry in the same transaction. A concurrent mover surfaces as Conflict.
func (s *TicketService) ChangeStatus(ctx context.Context, p domain.Principal, ticketID int64, newStatus domain.TicketStatus) (*domain.StatusLogEntry, error) {
	if policy.Check(p, policy.ActionChangeStatus, nil) != policy.Allow {
		return nil, apperrors.NewForbidden()
	}

	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	draft, err := lifecycle.ValidateTransition(ticket.Status, newStatus)
	if err != nil {
		return nil, err
	}

	entry, err := s.tickets.ChangeStatusWithLog(ctx, ticket.ID, draft, p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrStatusMoved) {
			return nil, apperrors.NewConflict("ticket status changed concurrently", map[string]any{
				"ticket_id": ticket.ID,
			})
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, p, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: entry.OldStatus,
			NewStatus: entry.NewStatus,
		},
	})
	return entry, nil
}

// Delete removes a ticket with its comments and log entries.
func (s *TicketService) Delete(ctx context.Context, p domain.Principal, ticketID int64) error {
	if policy.Check(p, policy.ActionDeleteTicket, nil) != policy.Allow {
		return apperrors.NewForbidden()
	}
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return apperrors.MapError(err)
	}
	s.publish(ctx, p, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticketID,
	})
	return nil
}

// History lists the status audit trail, oldest first, with the same
// visibility rule as viewing the ticket itself.
func (s *TicketService) History(ctx context.Context, p domain.Principal, ticketID int64) ([]domain.StatusLogEntry, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if policy.Check(p, policy.ActionViewTicket, ticket) != policy.Allow {
		return nil, apperrors.NewForbidden()
	}
	entries, err := s.statusLog.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

func (s *TicketService) getTicket(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) publish(ctx context.Context, p domain.Principal, event events.Event) {
	publishEvent(ctx, s.dispatcher, p, event)
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, p domain.Principal, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = ids.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.ActorID = p.ID
	event.ActorRole = p.Role
	_ = dispatcher.Publish(ctx, event)
}
