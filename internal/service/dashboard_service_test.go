package service_test

import (
	"context"
	"testing"
	"time"

	"focusflow/internal/model"
	"focusflow/internal/quadrant"
	"focusflow/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_OpenOnlyByDefault(t *testing.T) {
	store := newFakeStore()
	svc := service.NewDashboardService(store)
	ownerID := uuid.New()

	store.add(model.NewTodo(ownerID, "", "open task", nil, model.ChannelManual))
	store.add(model.NewTodo(ownerID, "", "done task", nil, model.ChannelManual).Completed())
	store.add(model.NewTodo(uuid.New(), "", "someone else's", nil, model.ChannelManual))

	dash, err := svc.Snapshot(context.Background(), ownerID, service.DashboardOptions{})

	require.NoError(t, err)
	assert.Len(t, dash.Todos, 1)
	assert.Equal(t, "open task", dash.Todos[0].Body)
	// Stats still cover all of the owner's todos.
	assert.Equal(t, int64(2), dash.Stats.Total)
	assert.Equal(t, int64(1), dash.Stats.Active)
	assert.Equal(t, int64(1), dash.Stats.Completed)
}

func TestSnapshot_IncludeCompleted(t *testing.T) {
	store := newFakeStore()
	svc := service.NewDashboardService(store)
	ownerID := uuid.New()

	store.add(model.NewTodo(ownerID, "", "open task", nil, model.ChannelManual))
	store.add(model.NewTodo(ownerID, "", "done task", nil, model.ChannelManual).Completed())

	dash, err := svc.Snapshot(context.Background(), ownerID, service.DashboardOptions{IncludeCompleted: true})

	require.NoError(t, err)
	assert.Len(t, dash.Todos, 2)
}

func TestSnapshot_OverdueOnly(t *testing.T) {
	store := newFakeStore()
	svc := service.NewDashboardService(store)
	ownerID := uuid.New()

	past := time.Now().AddDate(0, 0, -3)
	store.add(model.NewTodo(ownerID, "", "late task", &past, model.ChannelManual))
	store.add(model.NewTodo(ownerID, "", "no deadline", nil, model.ChannelManual))

	dash, err := svc.Snapshot(context.Background(), ownerID, service.DashboardOptions{OverdueOnly: true})

	require.NoError(t, err)
	require.Len(t, dash.Todos, 1)
	assert.Equal(t, "late task", dash.Todos[0].Body)
	assert.Equal(t, int64(1), dash.Stats.Overdue)
}

func TestSnapshot_QuadrantGrouping(t *testing.T) {
	store := newFakeStore()
	svc := service.NewDashboardService(store)
	ownerID := uuid.New()

	past := time.Now().AddDate(0, 0, -1)
	store.add(model.NewTodo(ownerID, "", "urgent and important", &past, model.ChannelManual).WithScore(1400))
	store.add(model.NewTodo(ownerID, "", "just important", nil, model.ChannelManual).WithScore(1400))
	store.add(model.NewTodo(ownerID, "", "neither", nil, model.ChannelManual))

	dash, err := svc.Snapshot(context.Background(), ownerID, service.DashboardOptions{})

	require.NoError(t, err)
	assert.Len(t, dash.Quadrants[quadrant.UrgentImportant], 1)
	assert.Len(t, dash.Quadrants[quadrant.NotUrgentImportant], 1)
	assert.Len(t, dash.Quadrants[quadrant.NotUrgentNotImportant], 1)
	assert.Empty(t, dash.Quadrants[quadrant.UrgentNotImportant])
}
