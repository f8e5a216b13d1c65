package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"focusflow/internal/model"
	"focusflow/internal/quadrant"
)

type DashboardService struct {
	todos TodoStore
}

func NewDashboardService(todos TodoStore) *DashboardService {
	return &DashboardService{todos: todos}
}

// Dashboard is the aggregated view handed to the presentation layer.
type Dashboard struct {
	Todos     []model.Todo                       `json:"todos"`
	Quadrants map[quadrant.Quadrant][]model.Todo `json:"quadrants"`
	Stats     model.Stats                        `json:"stats"`
}

// DashboardOptions narrow the snapshot.
type DashboardOptions struct {
	IncludeCompleted bool
	OverdueOnly      bool
}

// Snapshot fetches the owner's todos, buckets them into quadrants and
// merges in the aggregate counters.
func (s *DashboardService) Snapshot(ctx context.Context, ownerID uuid.UUID, opts DashboardOptions) (dash *Dashboard, err error) {
	defer guard(&err)

	filter := model.TodoFilter{OverdueOnly: opts.OverdueOnly}
	if !opts.IncludeCompleted {
		filter.Status = model.StatusOpen
	}

	todos, err := s.todos.FindByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	stats, err := s.todos.Stats(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Todos:     todos,
		Quadrants: quadrant.Group(todos, time.Now()),
		Stats:     *stats,
	}, nil
}
