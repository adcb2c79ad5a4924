package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bitwharf/helpdesk/internal/domain"
	"github.com/bitwharf/helpdesk/internal/events"
	"github.com/bitwharf/helpdesk/internal/policy"
	"github.com/bitwharf/helpdesk/internal/repository"
	apperrors "github.com/bitwharf/helpdesk/pkg/util"
)

// CommentService manages ticket discussion threads. Thread visibility
// follows the ticket relationship; edit and delete follow authorship.
type CommentService struct {
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	dispatcher events.Dispatcher
}

// CommentDependencies bundles repositories.
type CommentDependencies struct {
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	Dispatcher  events.Dispatcher
}

// NewCommentService creates the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Post appends a comment to the ticket's thread.
func (s *CommentService) Post(ctx context.Context, p domain.Principal, ticketID int64, text string) (*domain.Comment, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if policy.Check(p, policy.ActionPostComment, ticket) != policy.Allow {
		return nil, apperrors.NewForbidden()
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("comment text required", nil)
	}

	comment := &domain.Comment{
		TicketID: ticket.ID,
		AuthorID: p.ID,
		Text:     text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, p, events.Event{
		Type:     events.EventCommentAdded,
		TicketID: ticket.ID,
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			AuthorID:    comment.AuthorID,
			TextPreview: textPreview(comment.Text, 120),
		},
	})
	return comment, nil
}

// List returns the ticket's thread, oldest first.
func (s *CommentService) List(ctx context.Context, p domain.Principal, ticketID int64) ([]domain.Comment, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if policy.Check(p, policy.ActionViewComments, ticket) != policy.Allow {
		return nil, apperrors.NewForbidden()
	}
	comments, err := s.comments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return comments, nil
}

// Edit replaces a comment's text. Only the author or a manager may edit.
func (s *CommentService) Edit(ctx context.Context, p domain.Principal, ticketID, commentID int64, text string) (*domain.Comment, error) {
	comment, err := s.getComment(ctx, ticketID, commentID)
	if err != nil {
		return nil, err
	}
	if policy.CheckComment(p, policy.ActionEditComment, comment) != policy.Allow {
		return nil, apperrors.NewForbidden()
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("comment text required", nil)
	}

	if err := s.comments.UpdateText(ctx, comment.ID, text); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("comment", map[string]any{"comment_id": commentID})
		}
		return nil, apperrors.MapError(err)
	}
	comment.Text = text
	return comment, nil
}

// Delete removes a comment. Only the author or a manager may delete.
func (s *CommentService) Delete(ctx context.Context, p domain.Principal, ticketID, commentID int64) error {
	comment, err := s.getComment(ctx, ticketID, commentID)
	if err != nil {
		return err
	}
	if policy.CheckComment(p, policy.ActionDeleteComment, comment) != policy.Allow {
		return apperrors.NewForbidden()
	}
	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("comment", map[string]any{"comment_id": commentID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *CommentService) getTicket(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *CommentService) getComment(ctx context.Context, ticketID, commentID int64) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, ticketID, commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("comment", map[string]any{"comment_id": commentID})
		}
		return nil, apperrors.MapError(err)
	}
	return comment, nil
}

func textPreview(text string, max int) string {
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	if max <= 3 {
		return text[:max]
	}
	return text[:max-3] + "..."
}
