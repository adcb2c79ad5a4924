package dto

import "time"

// CommentRequest payload for posting and editing.
type CommentRequest struct {
	Text string `json:"text"`
}

// CommentResponse is one thread entry.
type CommentResponse struct {
	ID        int64     `json:"id"`
	TicketID  int64     `json:"ticket_id"`
	AuthorID  int64     `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
