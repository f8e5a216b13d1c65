package syncer_test

import (
	"context"
	"errors"
	"testing"

	"focusflow/internal/model"
	"focusflow/internal/service"
	"focusflow/internal/syncer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRemote scripts remote outcomes and counts reconciling fetches.
type fakeRemote struct {
	canonical []model.Todo

	completeErr error
	deleteErr   error
	updateErr   error
	fetchErr    error
	panicOnCall bool

	fetchCount int

	// beforeResolve runs inside the scripted call, before it returns.
	// Tests use it to interleave a second mutation mid-flight.
	beforeResolve func()
}

func (r *fakeRemote) Complete(ctx context.Context, id uuid.UUID) error {
	if r.panicOnCall {
		panic("remote exploded")
	}
	if r.beforeResolve != nil {
		r.beforeResolve()
	}
	return r.completeErr
}

func (r *fakeRemote) Delete(ctx context.Context, id uuid.UUID) error {
	return r.deleteErr
}

func (r *fakeRemote) Update(ctx context.Context, id uuid.UUID, input service.UpdateTodoInput) (*model.Todo, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	return &model.Todo{ID: id}, nil
}

func (r *fakeRemote) Fetch(ctx context.Context) ([]model.Todo, error) {
	r.fetchCount++
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	out := make([]model.Todo, len(r.canonical))
	copy(out, r.canonical)
	return out, nil
}

func seedTodos(ownerID uuid.UUID, bodies ...string) []model.Todo {
	todos := make([]model.Todo, 0, len(bodies))
	for _, body := range bodies {
		todos = append(todos, model.NewTodo(ownerID, "", body, nil, model.ChannelManual))
	}
	return todos
}

func TestComplete_OptimisticallyAppliedBeforeRemoteResolves(t *testing.T) {
	// Arrange
	ownerID := uuid.New()
	todos := seedTodos(ownerID, "first", "second")
	remote := &fakeRemote{canonical: todos}

	var statusMidFlight string
	c := syncer.New(remote, todos)
	remote.beforeResolve = func() {
		statusMidFlight = c.Todos()[0].Status
	}

	// Act
	out := c.Complete(context.Background(), todos[0].ID)

	// Assert: the snapshot already showed the completion while the
	// remote call was still in flight.
	assert.Equal(t, model.StatusCompleted, statusMidFlight)
	assert.Equal(t, syncer.Stable, out.State)
	assert.NoError(t, out.Err)
}

func TestComplete_SuccessKeepsOptimisticStateWithoutRefetch(t *testing.T) {
	ownerID := uuid.New()
	todos := seedTodos(ownerID, "task")
	remote := &fakeRemote{canonical: todos}
	c := syncer.New(remote, todos)

	out := c.Complete(context.Background(), todos[0].ID)

	assert.Equal(t, syncer.Stable, out.State)
	assert.Equal(t, 0, remote.fetchCount)
	assert.Equal(t, model.StatusCompleted, c.Todos()[0].Status)
}

func TestComplete_FailureRollsBackWithExactlyOneFetch(t *testing.T) {
	// Arrange
	ownerID := uuid.New()
	todos := seedTodos(ownerID, "task")
	remote := &fakeRemote{
		canonical:   todos,
		completeErr: errors.New("storage unavailable"),
	}
	c := syncer.New(remote, todos)

	// Act
	out := c.Complete(context.Background(), todos[0].ID)

	// Assert: displayed state equals the canonical pre-mutation state
	// and exactly one reconciling fetch happened.
	assert.Equal(t, syncer.RolledBack, out.State)
	assert.EqualError(t, out.Err, "storage unavailable")
	assert.Equal(t, 1, remote.fetchCount)
	require.Len(t, c.Todos(), 1)
	assert.Equal(t, model.StatusOpen, c.Todos()[0].Status)
}

func TestDelete_OptimisticRemovalAndRollback(t *testing.T) {
	ownerID := uuid.New()
	todos := seedTodos(ownerID, "keep", "drop")
	remote := &fakeRemote{canonical: todos, deleteErr: errors.New("denied")}
	c := syncer.New(remote, todos)

	out := c.Delete(context.Background(), todos[1].ID)

	assert.Equal(t, syncer.RolledBack, out.State)
	// The canonical refetch restored the deleted entry.
	assert.Len(t, c.Todos(), 2)
	assert.Equal(t, 1, remote.fetchCount)
}

func TestDelete_SuccessDropsEntry(t *testing.T) {
	ownerID := uuid.New()
	todos := seedTodos(ownerID, "keep", "drop")
	remote := &fakeRemote{canonical: todos}
	c := syncer.New(remote, todos)

	out := c.Delete(context.Background(), todos[1].ID)

	assert.Equal(t, syncer.Stable, out.State)
	require.Len(t, c.Todos(), 1)
	assert.Equal(t, "keep", c.Todos()[0].Body)
	assert.Equal(t, 0, remote.fetchCount)
}

func TestUpdate_AppliesFieldsOptimistically(t *testing.T) {
	ownerID := uuid.New()
	todos := seedTodos(ownerID, "old body")
	remote := &fakeRemote{canonical: todos}
	c := syncer.New(remote, todos)

	newBody := "new body"
	out := c.Update(context.Background(), todos[0].ID, service.UpdateTodoInput{Body: &newBody})

	assert.Equal(t, syncer.Stable, out.State)
	assert.Equal(t, "new body", c.Todos()[0].Body)
}

func TestUpdate_DeadlineShownWithoutRefetch(t *testing.T) {
	// Arrange
	ownerID := uuid.New()
	todos := seedTodos(ownerID, "undated")
	remote := &fakeRemote{canonical: todos}
	c := syncer.New(remote, todos)

	// Act
	deadline := "2025-12-01"
	out := c.Update(context.Background(), todos[0].ID, service.UpdateTodoInput{Deadline: &deadline})

	// Assert: the accepted deadline is displayed straight from the
	// optimistic snapshot, with no reconciling fetch.
	assert.Equal(t, syncer.Stable, out.State)
	assert.Equal(t, 0, remote.fetchCount)
	require.NotNil(t, c.Todos()[0].Deadline)
	assert.Equal(t, "2025-12-01", c.Todos()[0].Deadline.Format("2006-01-02"))
}

func TestRollback_FetchFailureRetainsOptimisticStateAndReportsBoth(t *testing.T) {
	// Arrange
	ownerID := uuid.New()
	todos := seedTodos(ownerID, "task")
	remote := &fakeRemote{
		canonical:   todos,
		completeErr: errors.New("storage unavailable"),
		fetchErr:    errors.New("network down"),
	}
	c := syncer.New(remote, todos)

	// Act
	out := c.Complete(context.Background(), todos[0].ID)

	// Assert: with no canonical state to fall back on, the optimistic
	// write stays visible and both failures are surfaced.
	assert.Equal(t, syncer.RolledBack, out.State)
	assert.ErrorContains(t, out.Err, "storage unavailable")
	assert.ErrorContains(t, out.Err, "network down")
	assert.Equal(t, 1, remote.fetchCount)
	assert.Equal(t, model.StatusCompleted, c.Todos()[0].Status)
}

func TestMutations_IndependentRecordsDoNotInterfere(t *testing.T) {
	ownerID := uuid.New()
	todos := seedTodos(ownerID, "a", "b")
	remote := &fakeRemote{canonical: todos}
	c := syncer.New(remote, todos)

	outA := c.Complete(context.Background(), todos[0].ID)
	newBody := "b updated"
	outB := c.Update(context.Background(), todos[1].ID, service.UpdateTodoInput{Body: &newBody})

	assert.Equal(t, syncer.Stable, outA.State)
	assert.Equal(t, syncer.Stable, outB.State)
	assert.Equal(t, model.StatusCompleted, c.Todos()[0].Status)
	assert.Equal(t, "b updated", c.Todos()[1].Body)
}

func TestSameRecordRace_LastWriteShownUntilReconcile(t *testing.T) {
	// Two in-flight mutations of the same record are not serialized:
	// the second optimistic write is displayed while the first call is
	// still pending. This mirrors the UI behavior and is deliberate.
	ownerID := uuid.New()
	todos := seedTodos(ownerID, "contested")
	remote := &fakeRemote{canonical: todos}
	c := syncer.New(remote, todos)

	newBody := "second write"
	var bodyMidFlight string
	remote.beforeResolve = func() {
		// Second mutation lands while the completion is in flight.
		remote.beforeResolve = nil
		c.Update(context.Background(), todos[0].ID, service.UpdateTodoInput{Body: &newBody})
		bodyMidFlight = c.Todos()[0].Body
	}

	out := c.Complete(context.Background(), todos[0].ID)

	assert.Equal(t, syncer.Stable, out.State)
	assert.Equal(t, "second write", bodyMidFlight)
	// Both succeeded, so both optimistic writes stand.
	assert.Equal(t, model.StatusCompleted, c.Todos()[0].Status)
	assert.Equal(t, "second write", c.Todos()[0].Body)
}

func TestRemotePanic_TreatedAsFailure(t *testing.T) {
	ownerID := uuid.New()
	todos := seedTodos(ownerID, "task")
	remote := &fakeRemote{canonical: todos, panicOnCall: true}
	c := syncer.New(remote, todos)

	out := c.Complete(context.Background(), todos[0].ID)

	assert.Equal(t, syncer.RolledBack, out.State)
	assert.ErrorIs(t, out.Err, service.ErrUnknown)
	assert.Equal(t, model.StatusOpen, c.Todos()[0].Status)
}

func TestRefresh_ReplacesSnapshot(t *testing.T) {
	ownerID := uuid.New()
	remote := &fakeRemote{canonical: seedTodos(ownerID, "fresh")}
	c := syncer.New(remote, nil)

	err := c.Refresh(context.Background())

	assert.NoError(t, err)
	require.Len(t, c.Todos(), 1)
	assert.Equal(t, "fresh", c.Todos()[0].Body)
}
