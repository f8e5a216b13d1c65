// Package syncer keeps a client-side snapshot of a user's todos in step
// with the remote use-case layer. Mutations apply to the snapshot
// immediately so the UI never waits on the network; a failed remote call
// rolls the snapshot back by refetching canonical state once.
package syncer

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"focusflow/internal/model"
	"focusflow/internal/service"
	"focusflow/internal/validation"
)

// State describes how one mutation resolved.
type State int

const (
	// Stable means the optimistic write was confirmed remotely.
	Stable State = iota
	// RolledBack means the remote call failed and the snapshot was
	// replaced by a reconciling fetch.
	RolledBack
)

// Remote is the slice of the use-case layer the coordinator talks to.
type Remote interface {
	Complete(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Update(ctx context.Context, id uuid.UUID, input service.UpdateTodoInput) (*model.Todo, error)
	Fetch(ctx context.Context) ([]model.Todo, error)
}

// Outcome reports how a mutation settled. Err carries the remote failure
// reason when State is RolledBack.
type Outcome struct {
	State State
	Err   error
}

// Coordinator serializes snapshot transitions with a mutex; remote calls
// happen outside the lock, so independent mutations overlap freely.
// Two in-flight mutations of the same todo race: the last optimistic
// write is displayed until the first failure reconciles. That mirrors
// how the UI behaves and is left as is.
type Coordinator struct {
	mu     sync.Mutex
	remote Remote
	todos  []model.Todo
}

func New(remote Remote, initial []model.Todo) *Coordinator {
	c := &Coordinator{remote: remote}
	c.todos = append(c.todos, initial...)
	return c
}

// Todos returns a copy of the current snapshot.
func (c *Coordinator) Todos() []model.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Todo, len(c.todos))
	copy(out, c.todos)
	return out
}

// Refresh replaces the snapshot with canonical state.
func (c *Coordinator) Refresh(ctx context.Context) error {
	todos, err := callFetch(ctx, c.remote)
	if err != nil {
		return err
	}
	c.replace(todos)
	return nil
}

// Complete optimistically marks the todo completed, then confirms remotely.
func (c *Coordinator) Complete(ctx context.Context, id uuid.UUID) Outcome {
	c.transform(id, func(t model.Todo) (model.Todo, bool) {
		return t.Completed(), true
	})
	return c.settle(ctx, func() error {
		return c.remote.Complete(ctx, id)
	})
}

// Delete optimistically drops the todo, then confirms remotely.
func (c *Coordinator) Delete(ctx context.Context, id uuid.UUID) Outcome {
	c.transform(id, func(t model.Todo) (model.Todo, bool) {
		return t, false
	})
	return c.settle(ctx, func() error {
		return c.remote.Delete(ctx, id)
	})
}

// Update optimistically applies the field changes, then confirms remotely.
func (c *Coordinator) Update(ctx context.Context, id uuid.UUID, input service.UpdateTodoInput) Outcome {
	c.transform(id, func(t model.Todo) (model.Todo, bool) {
		if input.Title != nil {
			t = t.WithTitle(*input.Title)
		}
		if input.Body != nil {
			t = t.WithBody(*input.Body)
		}
		if input.Deadline != nil {
			// An unparseable deadline is left to the remote call to
			// reject; the snapshot then rolls back with it.
			if deadline, err := validation.ParseDeadline(*input.Deadline); err == nil {
				t = t.WithDeadline(deadline)
			}
		}
		if input.Score != nil {
			t = t.WithScore(*input.Score)
		}
		return t, true
	})
	return c.settle(ctx, func() error {
		_, err := c.remote.Update(ctx, id, input)
		return err
	})
}

// transform rewrites the snapshot entry for id. keep=false removes it.
func (c *Coordinator) transform(id uuid.UUID, fn func(model.Todo) (model.Todo, bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.todos[:0:0]
	for _, t := range c.todos {
		if t.ID != id {
			next = append(next, t)
			continue
		}
		if updated, keep := fn(t); keep {
			next = append(next, updated)
		}
	}
	c.todos = next
}

func (c *Coordinator) replace(todos []model.Todo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.todos = todos
}

// settle issues the remote call. On success the optimistic snapshot
// stands without a refetch; on failure exactly one reconciling fetch
// replaces it and the failure reason is surfaced. When the fetch
// itself fails the optimistic snapshot is retained and both failures
// are reported.
func (c *Coordinator) settle(ctx context.Context, call func() error) Outcome {
	err := protect(call)
	if err == nil {
		return Outcome{State: Stable}
	}

	if canonical, ferr := callFetch(ctx, c.remote); ferr == nil {
		c.replace(canonical)
	} else {
		err = fmt.Errorf("%w (reconciling fetch failed: %v)", err, ferr)
	}
	return Outcome{State: RolledBack, Err: err}
}

func callFetch(ctx context.Context, remote Remote) (todos []model.Todo, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch failed: %v", r)
		}
	}()
	return remote.Fetch(ctx)
}

// protect turns a panicking remote call into an ordinary failure.
func protect(call func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = service.ErrUnknown
		}
	}()
	return call()
}
