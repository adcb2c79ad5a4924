// Package lifecycle holds the ticket status state machine and the
// creation-time validation gates.
package lifecycle

import (
	"strings"

	"github.com/bitwharf/helpdesk/internal/domain"
	apperrors "github.com/bitwharf/helpdesk/pkg/util"
)

const (
	minTitleLen            = 5
	minDescriptionLen      = 10
	minHighPriorityDescLen = 20
)

// allowedTransitions is the exhaustive legal-edge table. CLOSED is
// terminal: no outgoing edges, not even a self-loop.
var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusOpen:       {domain.TicketStatusInProgress},
	domain.TicketStatusInProgress: {domain.TicketStatusResolved},
	domain.TicketStatusResolved:   {domain.TicketStatusClosed},
	domain.TicketStatusClosed:     {},
}

// Allowed reports whether (current, next) is a legal edge.
func Allowed(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ValidateTransition checks the requested edge and, when legal, returns
// the draft audit entry the caller must persist atomically together with
// the ticket's new status.
func ValidateTransition(current, next domain.TicketStatus) (domain.StatusLogDraft, error) {
	if !Allowed(current, next) {
		return domain.StatusLogDraft{}, apperrors.NewInvalidTransition(string(current), string(next))
	}
	return domain.StatusLogDraft{OldStatus: current, NewStatus: next}, nil
}

// NewTicketInput carries the fields validated at creation time.
type NewTicketInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// ValidateNewTicket applies the creation-time gates. HIGH priority
// tickets require a longer description.
func ValidateNewTicket(input NewTicketInput) error {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)

	if len(title) < minTitleLen {
		return apperrors.NewValidationError("title too short", map[string]any{"min_length": minTitleLen})
	}
	if len(description) < minDescriptionLen {
		return apperrors.NewValidationError("description too short", map[string]any{"min_length": minDescriptionLen})
	}
	if input.Priority == domain.TicketPriorityHigh && len(description) < minHighPriorityDescLen {
		return apperrors.NewValidationError("high priority tickets need more description detail", map[string]any{
			"min_length": minHighPriorityDescLen,
		})
	}
	return nil
}
