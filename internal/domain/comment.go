package domain

import "time"

// Comment is one entry in a ticket's discussion thread. AuthorID and
// TicketID are set at creation and never change.
type Comment struct {
	ID        int64
	TicketID  int64
	AuthorID  int64
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
