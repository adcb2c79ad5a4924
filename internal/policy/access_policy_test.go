package policy

import (
	"testing"

	"github.com/bitwharf/helpdesk/internal/domain"
)

func ptr(id int64) *int64 { return &id }

func sampleTicket() *domain.Ticket {
	return &domain.Ticket{
		ID:         42,
		Status:     domain.TicketStatusOpen,
		CreatedBy:  5,
		AssignedTo: ptr(9),
	}
}

func TestCheckRoleOnlyActions(t *testing.T) {
	tests := []struct {
		name   string
		role   domain.Role
		action Action
		want   Decision
	}{
		{"manager creates ticket", domain.RoleManager, ActionCreateTicket, Allow},
		{"user creates ticket", domain.RoleUser, ActionCreateTicket, Allow},
		{"support cannot create ticket", domain.RoleSupport, ActionCreateTicket, Deny},

		{"manager changes status", domain.RoleManager, ActionChangeStatus, Allow},
		{"support changes status", domain.RoleSupport, ActionChangeStatus, Allow},
		{"user cannot change status", domain.RoleUser, ActionChangeStatus, Deny},

		{"manager modifies assignment", domain.RoleManager, ActionModifyAssignment, Allow},
		{"support modifies assignment", domain.RoleSupport, ActionModifyAssignment, Allow},
		{"user cannot modify assignment", domain.RoleUser, ActionModifyAssignment, Deny},

		{"manager deletes ticket", domain.RoleManager, ActionDeleteTicket, Allow},
		{"support cannot delete ticket", domain.RoleSupport, ActionDeleteTicket, Deny},
		{"user cannot delete ticket", domain.RoleUser, ActionDeleteTicket, Deny},

		{"manager registers user", domain.RoleManager, ActionRegisterUser, Allow},
		{"support cannot register user", domain.RoleSupport, ActionRegisterUser, Deny},
		{"user cannot register user", domain.RoleUser, ActionRegisterUser, Deny},

		{"manager lists users", domain.RoleManager, ActionListUsers, Allow},
		{"support cannot list users", domain.RoleSupport, ActionListUsers, Deny},

		{"manager lists tickets", domain.RoleManager, ActionListTickets, Allow},
		{"support lists tickets", domain.RoleSupport, ActionListTickets, Allow},
		{"user lists tickets", domain.RoleUser, ActionListTickets, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.Principal{ID: 1, Role: tt.role}
			if got := Check(p, tt.action, sampleTicket()); got != tt.want {
				t.Errorf("Check(%s, %s) = %v, want %v", tt.role, tt.action, got, tt.want)
			}
		})
	}
}

func TestCheckTicketRelationshipActions(t *testing.T) {
	ticket := sampleTicket()

	tests := []struct {
		name string
		p    domain.Principal
		want Decision
	}{
		{"manager sees any ticket", domain.Principal{ID: 1, Role: domain.RoleManager}, Allow},
		{"creator sees own ticket", domain.Principal{ID: 5, Role: domain.RoleUser}, Allow},
		{"assignee sees assigned ticket", domain.Principal{ID: 9, Role: domain.RoleSupport}, Allow},
		{"unrelated user denied", domain.Principal{ID: 7, Role: domain.RoleUser}, Deny},
		{"unrelated support denied", domain.Principal{ID: 8, Role: domain.RoleSupport}, Deny},
	}

	relActions := []Action{ActionViewTicket, ActionPostComment, ActionViewComments}

	for _, tt := range tests {
		for _, action := range relActions {
			t.Run(tt.name+"/"+string(action), func(t *testing.T) {
				if got := Check(tt.p, action, ticket); got != tt.want {
					t.Errorf("Check(%+v, %s) = %v, want %v", tt.p, action, got, tt.want)
				}
			})
		}
	}
}

func TestCheckNilTicketDeniesRelationshipActions(t *testing.T) {
	p := domain.Principal{ID: 5, Role: domain.RoleUser}
	for _, action := range []Action{ActionViewTicket, ActionPostComment, ActionViewComments} {
		if got := Check(p, action, nil); got != Deny {
			t.Errorf("Check(user, %s, nil) = %v, want Deny", action, got)
		}
	}
	// A manager's access does not depend on the target.
	m := domain.Principal{ID: 1, Role: domain.RoleManager}
	if got := Check(m, ActionViewTicket, nil); got != Allow {
		t.Errorf("Check(manager, view_ticket, nil) = %v, want Allow", got)
	}
}

func TestCheckUnknownActionDenies(t *testing.T) {
	p := domain.Principal{ID: 1, Role: domain.RoleManager}
	if got := Check(p, Action("launch_rockets"), sampleTicket()); got != Deny {
		t.Errorf("unknown action = %v, want Deny", got)
	}
}

func TestCheckCommentActionsRoutedThroughCheckDeny(t *testing.T) {
	// Comment-level actions passed to Check (instead of CheckComment)
	// always deny, even for a manager.
	p := domain.Principal{ID: 1, Role: domain.RoleManager}
	for _, action := range []Action{ActionEditComment, ActionDeleteComment} {
		if got := Check(p, action, sampleTicket()); got != Deny {
			t.Errorf("Check(manager, %s, ticket) = %v, want Deny", action, got)
		}
	}
}

func TestCheckComment(t *testing.T) {
	comment := &domain.Comment{ID: 3, TicketID: 42, AuthorID: 5}

	tests := []struct {
		name    string
		p       domain.Principal
		comment *domain.Comment
		want    Decision
	}{
		{"author edits own comment", domain.Principal{ID: 5, Role: domain.RoleUser}, comment, Allow},
		{"manager edits any comment", domain.Principal{ID: 1, Role: domain.RoleManager}, comment, Allow},
		{"other user denied", domain.Principal{ID: 7, Role: domain.RoleUser}, comment, Deny},
		{"assignee but not author denied", domain.Principal{ID: 9, Role: domain.RoleSupport}, comment, Deny},
		{"nil comment denied for non-manager", domain.Principal{ID: 5, Role: domain.RoleUser}, nil, Deny},
	}

	for _, tt := range tests {
		for _, action := range []Action{ActionEditComment, ActionDeleteComment} {
			t.Run(tt.name+"/"+string(action), func(t *testing.T) {
				if got := CheckComment(tt.p, action, tt.comment); got != tt.want {
					t.Errorf("CheckComment(%+v, %s) = %v, want %v", tt.p, action, got, tt.want)
				}
			})
		}
	}
}

func TestScopeFor(t *testing.T) {
	manager := ScopeFor(domain.Principal{ID: 1, Role: domain.RoleManager})
	if manager.CreatedBy != nil || manager.AssignedTo != nil {
		t.Errorf("manager scope = %+v, want unconstrained", manager)
	}

	support := ScopeFor(domain.Principal{ID: 9, Role: domain.RoleSupport})
	if support.CreatedBy != nil || support.AssignedTo == nil || *support.AssignedTo != 9 {
		t.Errorf("support scope = %+v, want AssignedTo=9", support)
	}

	user := ScopeFor(domain.Principal{ID: 5, Role: domain.RoleUser})
	if user.AssignedTo != nil || user.CreatedBy == nil || *user.CreatedBy != 5 {
		t.Errorf("user scope = %+v, want CreatedBy=5", user)
	}
}
