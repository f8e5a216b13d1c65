package syncer

import (
	"context"

	"github.com/google/uuid"

	"focusflow/internal/model"
	"focusflow/internal/service"
)

// ServiceRemote adapts the use-case layer to the Remote interface for a
// single owner.
type ServiceRemote struct {
	OwnerID    uuid.UUID
	Todos      *service.TodoService
	Dashboards *service.DashboardService
}

var _ Remote = (*ServiceRemote)(nil)

func (r *ServiceRemote) Complete(ctx context.Context, id uuid.UUID) error {
	return r.Todos.Complete(ctx, r.OwnerID, id)
}

func (r *ServiceRemote) Delete(ctx context.Context, id uuid.UUID) error {
	return r.Todos.Delete(ctx, r.OwnerID, id)
}

func (r *ServiceRemote) Update(ctx context.Context, id uuid.UUID, input service.UpdateTodoInput) (*model.Todo, error) {
	return r.Todos.Update(ctx, r.OwnerID, id, input)
}

func (r *ServiceRemote) Fetch(ctx context.Context) ([]model.Todo, error) {
	dash, err := r.Dashboards.Snapshot(ctx, r.OwnerID, service.DashboardOptions{IncludeCompleted: true})
	if err != nil {
		return nil, err
	}
	return dash.Todos, nil
}
