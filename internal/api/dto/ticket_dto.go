package dto

import (
	"time"

	"github.com/bitwharf/helpdesk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	NewStatus domain.TicketStatus `json:"new_status"`
}

// AssignRequest payload.
type AssignRequest struct {
	UserID int64 `json:"user_id"`
}

// TicketResponse is the caller-visible ticket shape.
type TicketResponse struct {
	ID          int64                 `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	CreatedBy   int64                 `json:"created_by"`
	AssignedTo  *int64                `json:"assigned_to,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// StatusLogResponse is one audit trail entry.
type StatusLogResponse struct {
	ID        int64               `json:"id"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	ChangedBy int64               `json:"changed_by"`
	ChangedAt time.Time           `json:"changed_at"`
}
