package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
)

// Ticket is the aggregate root for support requests. Comments and status
// log entries belong to a ticket and are never persisted without one.
type Ticket struct {
	ID          int64
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	CreatedBy   int64
	AssignedTo  *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsCreator reports whether the given user created the ticket.
func (t *Ticket) IsCreator(userID int64) bool {
	return t.CreatedBy == userID
}

// IsAssignee reports whether the given user is the current assignee.
func (t *Ticket) IsAssignee(userID int64) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}
