package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akettner/jire/internal/domain"
	"github.com/akettner/jire/internal/testutil"
)

var testNow = time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)

func newTestRepo(t *testing.T) *SQLiteTicketRepo {
	t.Helper()
	return NewSQLiteTicketRepo(testutil.NewTestDB(t), testutil.NewTestLogger())
}

func TestTicketRepo_CreateAndGetByID_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Fix login bug", "users cannot log in", "web",
		testutil.StringPtr("alice"), "alice", testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, created.Status)
	require.NotNil(t, created.AssignedTo)
	assert.Equal(t, "alice", *created.AssignedTo)
	assert.Nil(t, created.UpdatedBy)
	assert.Nil(t, created.UpdatedAt)
	assert.Equal(t, testNow, created.CreatedAt)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestTicketRepo_Create_SecondPrecision(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	subSecond := testNow.Add(750 * time.Millisecond)
	created, err := repo.Create(ctx, "precise", "", "", nil, "alice", subSecond)
	require.NoError(t, err)
	assert.Equal(t, testNow, created.CreatedAt, "sub-second precision should be dropped")
}

func TestTicketRepo_GetByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTicketRepo_TransitionAssignment(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "task", "", "web", testutil.StringPtr("alice"), "alice", testNow)
	require.NoError(t, err)

	later := testNow.Add(time.Hour)
	updated, err := repo.TransitionAssignment(ctx, created.ID, domain.StatusDoing,
		testutil.StringPtr("bob"), "bob", later)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDoing, updated.Status)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, "bob", *updated.AssignedTo)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, "bob", *updated.UpdatedBy)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, later, *updated.UpdatedAt)
	assert.True(t, !updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestTicketRepo_TransitionAssignment_ClearsAssignee(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "task", "", "", testutil.StringPtr("alice"), "alice", testNow)
	require.NoError(t, err)

	updated, err := repo.TransitionAssignment(ctx, created.ID, domain.StatusTodo, nil, "alice", testNow)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, updated.Status)
	assert.Nil(t, updated.AssignedTo)
}

func TestTicketRepo_TransitionAssignment_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.TransitionAssignment(context.Background(), 99, domain.StatusDoing, nil, "alice", testNow)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTicketRepo_Complete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "task", "", "", testutil.StringPtr("bob"), "alice", testNow)
	require.NoError(t, err)

	done, err := repo.Complete(ctx, created.ID, "fixed in v2", "bob", testNow.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, done.Status)
	assert.Nil(t, done.AssignedTo, "completion must clear the assignee")
	assert.Equal(t, "fixed in v2", done.Notes)
	require.NotNil(t, done.UpdatedBy)
	assert.Equal(t, "bob", *done.UpdatedBy)
}

func TestTicketRepo_Complete_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Complete(context.Background(), 7, "", "alice", testNow)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTicketRepo_List_NoFilterReturnsAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"one", "two", "three"} {
		_, err := repo.Create(ctx, name, "", "", nil, "alice", testNow)
		require.NoError(t, err)
	}

	tickets, err := repo.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	// Row order: ascending rowid.
	assert.Equal(t, "one", tickets[0].Name)
	assert.Equal(t, "two", tickets[1].Name)
	assert.Equal(t, "three", tickets[2].Name)
}

func TestTicketRepo_List_FilterCombinations(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	t1, err := repo.Create(ctx, "alpha", "", "web", testutil.StringPtr("alice"), "alice", testNow)
	require.NoError(t, err)
	t2, err := repo.Create(ctx, "beta", "", "web", testutil.StringPtr("bob"), "alice", testNow)
	require.NoError(t, err)
	t3, err := repo.Create(ctx, "gamma", "", "infra", testutil.StringPtr("bob"), "carol", testNow)
	require.NoError(t, err)

	_, err = repo.TransitionAssignment(ctx, t2.ID, domain.StatusDoing, testutil.StringPtr("bob"), "bob", testNow)
	require.NoError(t, err)

	byStatus, err := repo.List(ctx, Filter{Status: domain.StatusTodo})
	require.NoError(t, err)
	assert.Equal(t, []int64{t1.ID, t3.ID}, ticketIDs(byStatus))

	byAssignee, err := repo.List(ctx, Filter{AssignedTo: "bob"})
	require.NoError(t, err)
	assert.Equal(t, []int64{t2.ID, t3.ID}, ticketIDs(byAssignee))

	byCreator, err := repo.List(ctx, Filter{CreatedBy: "alice"})
	require.NoError(t, err)
	assert.Equal(t, []int64{t1.ID, t2.ID}, ticketIDs(byCreator))

	conjunction, err := repo.List(ctx, Filter{Status: domain.StatusTodo, AssignedTo: "bob", CreatedBy: "carol"})
	require.NoError(t, err)
	assert.Equal(t, []int64{t3.ID}, ticketIDs(conjunction))

	empty, err := repo.List(ctx, Filter{Status: domain.StatusDone})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTicketRepo_List_FilterValuesAreBound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "safe", "", "", nil, "alice", testNow)
	require.NoError(t, err)

	// A hostile filter value must behave as a literal, not as SQL.
	tickets, err := repo.List(ctx, Filter{CreatedBy: "alice' OR '1'='1"})
	require.NoError(t, err)
	assert.Empty(t, tickets)

	tickets, err = repo.List(ctx, Filter{CreatedBy: "alice"})
	require.NoError(t, err)
	assert.Equal(t, []int64{created.ID}, ticketIDs(tickets))
}

func ticketIDs(tickets []*domain.Ticket) []int64 {
	ids := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		ids = append(ids, t.ID)
	}
	return ids
}
