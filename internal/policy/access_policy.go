// Package policy decides which (principal, action, target) combinations
// are permitted. Decisions are total: every combination yields exactly
// Allow or Deny, never an error, and a Deny carries no further detail.
package policy

import "github.com/bitwharf/helpdesk/internal/domain"

// Action enumerates every authorizable operation.
type Action string

const (
	ActionViewTicket       Action = "view_ticket"
	ActionListTickets      Action = "list_tickets"
	ActionCreateTicket     Action = "create_ticket"
	ActionChangeStatus     Action = "change_status"
	ActionModifyAssignment Action = "modify_assignment"
	ActionDeleteTicket     Action = "delete_ticket"
	ActionPostComment      Action = "post_comment"
	ActionViewComments     Action = "view_comments"
	ActionEditComment      Action = "edit_comment"
	ActionDeleteComment    Action = "delete_comment"
	ActionRegisterUser     Action = "register_user"
	ActionListUsers        Action = "list_users"
)

// Decision is the outcome of a policy check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// Check evaluates an action against a ticket. Actions that key off a
// specific comment go through CheckComment instead; passing them here
// denies. Unknown actions deny.
func Check(p domain.Principal, action Action, ticket *domain.Ticket) Decision {
	switch action {
	case ActionListTickets:
		// Always allowed; the result set is narrowed by ScopeFor.
		return Allow
	case ActionCreateTicket:
		if p.Role == domain.RoleUser || p.Role == domain.RoleManager {
			return Allow
		}
	case ActionViewTicket, ActionPostComment, ActionViewComments:
		if ticketParticipant(p, ticket) {
			return Allow
		}
	case ActionChangeStatus, ActionModifyAssignment:
		if p.Role == domain.RoleManager || p.Role == domain.RoleSupport {
			return Allow
		}
	case ActionDeleteTicket, ActionRegisterUser, ActionListUsers:
		if p.Role == domain.RoleManager {
			return Allow
		}
	}
	return Deny
}

// CheckComment evaluates comment-level actions. Edit and delete key off
// authorship of the specific comment, not the caller's relationship to
// the ticket.
func CheckComment(p domain.Principal, action Action, comment *domain.Comment) Decision {
	switch action {
	case ActionEditComment, ActionDeleteComment:
		if p.Role == domain.RoleManager {
			return Allow
		}
		if comment != nil && comment.AuthorID == p.ID {
			return Allow
		}
	}
	return Deny
}

// TicketScope is the role-dependent predicate restricting which tickets
// a listing returns. Nil fields mean unconstrained.
type TicketScope struct {
	CreatedBy  *int64
	AssignedTo *int64
}

// ScopeFor returns the listing scope for the principal: managers see
// everything, support sees tickets assigned to them, users see tickets
// they created.
func ScopeFor(p domain.Principal) TicketScope {
	switch p.Role {
	case domain.RoleManager:
		return TicketScope{}
	case domain.RoleSupport:
		id := p.ID
		return TicketScope{AssignedTo: &id}
	default:
		id := p.ID
		return TicketScope{CreatedBy: &id}
	}
}

func ticketParticipant(p domain.Principal, ticket *domain.Ticket) bool {
	if p.Role == domain.RoleManager {
		return true
	}
	if ticket == nil {
		return false
	}
	return ticket.IsCreator(p.ID) || ticket.IsAssignee(p.ID)
}
