package service

import (
	"context"
	"testing"

	"github.com/bitwharf/helpdesk/internal/domain"
	"github.com/bitwharf/helpdesk/internal/events"
)

type assignmentFixture struct {
	tickets    *fakeTicketRepo
	users      *fakeUserRepo
	dispatcher *recordingDispatcher
	svc        *AssignmentService
	ticket     *domain.Ticket
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	tickets := newFakeTicketRepo(newFakeStatusLogRepo())
	users := newFakeUserRepo(
		&domain.User{ID: 1, Email: "mgr@example.com", Role: domain.RoleManager},
		&domain.User{ID: 5, Email: "user@example.com", Role: domain.RoleUser},
		&domain.User{ID: 9, Email: "sup@example.com", Role: domain.RoleSupport},
	)
	dispatcher := &recordingDispatcher{}
	svc := NewAssignmentService(AssignmentDependencies{
		TicketRepo: tickets,
		UserRepo:   users,
		Dispatcher: dispatcher,
	})

	ticket := &domain.Ticket{
		Title:       "VPN drops",
		Description: "connection resets hourly",
		Status:      domain.TicketStatusOpen,
		Priority:    domain.TicketPriorityMedium,
		CreatedBy:   enduser.ID,
	}
	if err := tickets.Create(context.Background(), ticket); err != nil {
		t.Fatalf("seed ticket: %v", err)
	}
	return &assignmentFixture{tickets: tickets, users: users, dispatcher: dispatcher, svc: svc, ticket: ticket}
}

func TestAssign(t *testing.T) {
	fx := newAssignmentFixture(t)
	ctx := context.Background()

	updated, err := fx.svc.Assign(ctx, manager, fx.ticket.ID, support.ID)
	if err != nil {
		t.Fatalf("Assign() = %v", err)
	}
	if updated.AssignedTo == nil || *updated.AssignedTo != support.ID {
		t.Errorf("assigned_to = %v, want %d", updated.AssignedTo, support.ID)
	}

	stored, _ := fx.tickets.GetByID(ctx, fx.ticket.ID)
	if stored.AssignedTo == nil || *stored.AssignedTo != support.ID {
		t.Errorf("stored assigned_to = %v, want %d", stored.AssignedTo, support.ID)
	}

	published := fx.dispatcher.published()
	if len(published) != 1 || published[0].Type != events.EventTicketAssigned {
		t.Fatalf("published = %+v, want one assignment event", published)
	}
}

func TestAssignSupportMayReassign(t *testing.T) {
	fx := newAssignmentFixture(t)

	if _, err := fx.svc.Assign(context.Background(), support, fx.ticket.ID, 1); err != nil {
		t.Fatalf("support Assign(manager) = %v, want nil", err)
	}
}

func TestAssignRejections(t *testing.T) {
	fx := newAssignmentFixture(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		p          domain.Principal
		ticketID   int64
		assigneeID int64
		wantCode   string
	}{
		{"user cannot assign", enduser, fx.ticket.ID, support.ID, "FORBIDDEN"},
		{"assignee with USER role rejected", manager, fx.ticket.ID, enduser.ID, "INVALID_ASSIGNEE"},
		{"missing ticket", manager, 9999, support.ID, "NOT_FOUND"},
		{"missing assignee", manager, fx.ticket.ID, 9999, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.svc.Assign(ctx, tt.p, tt.ticketID, tt.assigneeID)
			if code := errCode(t, err); code != tt.wantCode {
				t.Fatalf("code = %s, want %s", code, tt.wantCode)
			}
		})
	}

	// Failed attempts leave the ticket untouched and publish nothing.
	stored, _ := fx.tickets.GetByID(ctx, fx.ticket.ID)
	if stored.AssignedTo != nil {
		t.Errorf("assigned_to = %v, want nil", stored.AssignedTo)
	}
	if len(fx.dispatcher.published()) != 0 {
		t.Error("rejected assignments must not publish events")
	}
}
