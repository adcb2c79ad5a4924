package domain

import "time"

// StatusLogDraft is the pure value produced by transition validation.
// The caller persists it together with the ticket's new status in one
// transaction so the ticket and its log never disagree.
type StatusLogDraft struct {
	OldStatus TicketStatus
	NewStatus TicketStatus
}

// StatusLogEntry is an immutable audit record of one status change.
type StatusLogEntry struct {
	ID        int64
	TicketID  int64
	OldStatus TicketStatus
	NewStatus TicketStatus
	ChangedBy int64
	ChangedAt time.Time
}
