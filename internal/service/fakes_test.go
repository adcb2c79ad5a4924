package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bitwharf/helpdesk/internal/domain"
	"github.com/bitwharf/helpdesk/internal/events"
	"github.com/bitwharf/helpdesk/internal/repository"
)

// fakeTicketRepo is an in-memory TicketRepository. ChangeStatusWithLog
// performs the same compare-and-set as the Postgres implementation so
// concurrency behavior can be exercised without a database.
type fakeTicketRepo struct {
	mu      sync.Mutex
	nextID  int64
	tickets map[int64]*domain.Ticket
	log     *fakeStatusLogRepo

	// afterRead, when set, runs after GetByID returns its snapshot and
	// outside the lock. Tests use it to hold several readers at the same
	// observed status before any of them writes.
	afterRead func()
}

func newFakeTicketRepo(log *fakeStatusLogRepo) *fakeTicketRepo {
	return &fakeTicketRepo{nextID: 1, tickets: make(map[int64]*domain.Ticket), log: log}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket.ID = f.nextID
	f.nextID++
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	copied := *ticket
	f.tickets[ticket.ID] = &copied
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	f.mu.Lock()
	ticket, ok := f.tickets[id]
	var copied domain.Ticket
	if ok {
		copied = *ticket
	}
	hook := f.afterRead
	f.mu.Unlock()

	if !ok {
		return nil, pgx.ErrNoRows
	}
	if hook != nil {
		hook()
	}
	return &copied, nil
}

func (f *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range f.tickets {
		if filter.CreatedBy != nil && ticket.CreatedBy != *filter.CreatedBy {
			continue
		}
		if filter.AssignedTo != nil && (ticket.AssignedTo == nil || *ticket.AssignedTo != *filter.AssignedTo) {
			continue
		}
		result = append(result, *ticket)
	}
	return result, nil
}

func (f *fakeTicketRepo) ChangeStatusWithLog(ctx context.Context, ticketID int64, draft domain.StatusLogDraft, changedBy int64) (*domain.StatusLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if ticket.Status != draft.OldStatus {
		return nil, repository.ErrStatusMoved
	}
	ticket.Status = draft.NewStatus
	ticket.UpdatedAt = time.Now()

	entry := &domain.StatusLogEntry{
		TicketID:  ticketID,
		OldStatus: draft.OldStatus,
		NewStatus: draft.NewStatus,
		ChangedBy: changedBy,
	}
	if err := f.log.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (f *fakeTicketRepo) UpdateAssignment(_ context.Context, ticketID, assigneeID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return pgx.ErrNoRows
	}
	id := assigneeID
	ticket.AssignedTo = &id
	return nil
}

func (f *fakeTicketRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.tickets, id)
	return nil
}

type fakeStatusLogRepo struct {
	mu      sync.Mutex
	nextID  int64
	entries []domain.StatusLogEntry
}

func newFakeStatusLogRepo() *fakeStatusLogRepo {
	return &fakeStatusLogRepo{nextID: 1}
}

func (f *fakeStatusLogRepo) Append(_ context.Context, entry *domain.StatusLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = f.nextID
	f.nextID++
	entry.ChangedAt = time.Now()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeStatusLogRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.StatusLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.StatusLogEntry
	for _, entry := range f.entries {
		if entry.TicketID == ticketID {
			result = append(result, entry)
		}
	}
	return result, nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{nextID: 1, users: make(map[int64]*domain.User)}
	for _, user := range users {
		copied := *user
		repo.users[user.ID] = &copied
		if user.ID >= repo.nextID {
			repo.nextID = user.ID + 1
		}
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.User
	for _, user := range f.users {
		result = append(result, *user)
	}
	return result, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	nextID   int64
	comments map[int64]*domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{nextID: 1, comments: make(map[int64]*domain.Comment)}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment.ID = f.nextID
	f.nextID++
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	copied := *comment
	f.comments[comment.ID] = &copied
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, ticketID, commentID int64) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[commentID]
	if !ok || comment.TicketID != ticketID {
		return nil, pgx.ErrNoRows
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeCommentRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Comment
	for _, comment := range f.comments {
		if comment.TicketID == ticketID {
			result = append(result, *comment)
		}
	}
	return result, nil
}

func (f *fakeCommentRepo) UpdateText(_ context.Context, commentID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[commentID]
	if !ok {
		return pgx.ErrNoRows
	}
	comment.Text = text
	comment.UpdatedAt = time.Now()
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, commentID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[commentID]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.comments, commentID)
	return nil
}

// recordingDispatcher collects published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
