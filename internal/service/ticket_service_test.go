package service

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/psds-microservice/support-portal/internal/database"
	"github.com/psds-microservice/support-portal/internal/errs"
	"github.com/psds-microservice/support-portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *TicketService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickets.db")
	require.NoError(t, database.MigrateUp(path))
	db, err := database.Open(path)
	require.NoError(t, err)
	return NewTicketService(db)
}

func createTicket(t *testing.T, svc *TicketService, name, priority string) *model.Ticket {
	t.Helper()
	ticket := &model.Ticket{
		Name:     name,
		Email:    name + "@example.com",
		Reason:   "cannot log in",
		Priority: priority,
	}
	require.NoError(t, svc.Create(context.Background(), ticket))
	return ticket
}

func TestCreatePopulatesTicket(t *testing.T) {
	svc := newTestService(t)

	ticket := &model.Ticket{
		Name:     "Alice",
		Email:    "alice@example.com",
		Reason:   "refund request",
		Priority: "high",
		Note:     "order #1234",
	}
	require.NoError(t, svc.Create(context.Background(), ticket))

	assert.NotZero(t, ticket.ID)
	assert.True(t, strings.HasPrefix(ticket.TicketID, "TKT-"), "ticket_id %q", ticket.TicketID)
	assert.Equal(t, model.DefaultStatus, ticket.Status)
	assert.False(t, ticket.CreatedAt.IsZero())
	assert.False(t, ticket.UpdatedAt.IsZero())
}

func TestCreateConcurrentTicketIDsUnique(t *testing.T) {
	svc := newTestService(t)

	const n = 20
	var wg sync.WaitGroup
	results := make([]*model.Ticket, n)
	createErrs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ticket := &model.Ticket{
				Name:     "Bob",
				Email:    "bob@example.com",
				Reason:   "billing",
				Priority: "low",
			}
			createErrs[i] = svc.Create(context.Background(), ticket)
			results[i] = ticket
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		require.NoError(t, createErrs[i])
		require.NotEmpty(t, results[i].TicketID)
		assert.False(t, seen[results[i].TicketID], "duplicate ticket_id %q", results[i].TicketID)
		seen[results[i].TicketID] = true
	}
}

func TestListOrderedByCreatedAtDesc(t *testing.T) {
	svc := newTestService(t)

	first := createTicket(t, svc, "Alice", "low")
	time.Sleep(10 * time.Millisecond)
	second := createTicket(t, svc, "Bob", "low")

	items, err := svc.List(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestListEmptyResultIsNotError(t *testing.T) {
	svc := newTestService(t)

	items, err := svc.List(context.Background(), Filter{Status: "closed"})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListFiltersComposeWithAnd(t *testing.T) {
	svc := newTestService(t)

	createTicket(t, svc, "Alice", "low")
	want := createTicket(t, svc, "Bob", "high")

	items, err := svc.List(context.Background(), Filter{Priority: "high", Status: "new"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, want.ID, items[0].ID)
}

func TestListReasonSubstringMatch(t *testing.T) {
	svc := newTestService(t)

	ticket := &model.Ticket{
		Name:     "Carol",
		Email:    "carol@example.com",
		Reason:   "payment declined twice",
		Priority: "high",
	}
	require.NoError(t, svc.Create(context.Background(), ticket))
	createTicket(t, svc, "Dave", "low")

	items, err := svc.List(context.Background(), Filter{Reason: "declined"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ticket.ID, items[0].ID)
}

func TestSearchMatchesAnyField(t *testing.T) {
	svc := newTestService(t)

	ticket := &model.Ticket{
		Name:     "Erin",
		Email:    "erin@example.com",
		Reason:   "cannot log in",
		Priority: "low",
		Note:     "billing issue",
	}
	require.NoError(t, svc.Create(context.Background(), ticket))
	createTicket(t, svc, "Frank", "low")

	// The term only appears in the note.
	items, err := svc.List(context.Background(), Filter{Search: "billing"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ticket.ID, items[0].ID)

	// And matching by email still works through the same filter.
	items, err = svc.List(context.Background(), Filter{Search: "frank@"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Frank", items[0].Name)
}

func TestUpdateStatus(t *testing.T) {
	svc := newTestService(t)

	ticket := createTicket(t, svc, "Alice", "high")
	before := ticket.UpdatedAt
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, svc.UpdateStatus(context.Background(), ticket.ID, "in_progress"))

	items, err := svc.List(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	got := items[0]
	assert.Equal(t, "in_progress", got.Status)
	assert.True(t, got.UpdatedAt.After(before), "updated_at must advance")
	assert.Equal(t, ticket.TicketID, got.TicketID)
	assert.Equal(t, ticket.Name, got.Name)
	assert.Equal(t, ticket.Email, got.Email)
	assert.Equal(t, ticket.Reason, got.Reason)
	assert.WithinDuration(t, ticket.CreatedAt, got.CreatedAt, time.Second)
}

func TestUpdateStatusAcceptsAnyValue(t *testing.T) {
	svc := newTestService(t)

	ticket := createTicket(t, svc, "Alice", "low")
	require.NoError(t, svc.UpdateStatus(context.Background(), ticket.ID, "waiting_on_customer"))

	items, err := svc.List(context.Background(), Filter{Status: "waiting_on_customer"})
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := newTestService(t)

	ticket := createTicket(t, svc, "Alice", "low")
	before := ticket.UpdatedAt

	err := svc.UpdateStatus(context.Background(), 9999, "closed")
	require.ErrorIs(t, err, errs.ErrTicketNotFound)

	// The existing row must be untouched.
	items, err := svc.List(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.DefaultStatus, items[0].Status)
	assert.WithinDuration(t, before, items[0].UpdatedAt, time.Second)
}

func TestStats(t *testing.T) {
	svc := newTestService(t)

	createTicket(t, svc, "Alice", model.PriorityUrgent)
	createTicket(t, svc, "Bob", "high")
	third := createTicket(t, svc, "Carol", "low")
	require.NoError(t, svc.UpdateStatus(context.Background(), third.ID, "in_progress"))

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Urgent)
	assert.Equal(t, int64(2), stats.New)
	assert.Equal(t, int64(3), stats.Today)
}

func TestNewTicketIDFormat(t *testing.T) {
	id := newTicketID()
	parts := strings.SplitN(id, "-", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "TKT", parts[0])
	assert.NotEmpty(t, parts[1])
	assert.Len(t, parts[2], 9)
}
