package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"focusflow/internal/model"
	"focusflow/internal/repository"
	"focusflow/internal/validation"
)

type TodoService struct {
	todos       TodoStore
	completions CompletionStore
}

func NewTodoService(todos TodoStore, completions CompletionStore) *TodoService {
	return &TodoService{todos: todos, completions: completions}
}

// CreateTodoInput carries the user-supplied fields of a new todo.
type CreateTodoInput struct {
	Title    string
	Body     string
	Deadline string // ISO-8601 date, empty for none
	Channel  string // defaults to manual
}

// UpdateTodoInput carries a partial update; nil fields are left untouched.
// An empty Deadline string clears the deadline.
type UpdateTodoInput struct {
	Title    *string
	Body     *string
	Deadline *string
	Score    *float64
}

// BulkOutcome reports how a bulk score update went.
type BulkOutcome struct {
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// Create validates and persists a new todo for the owner.
func (s *TodoService) Create(ctx context.Context, ownerID uuid.UUID, input CreateTodoInput) (todo *model.Todo, err error) {
	defer guard(&err)

	deadline, perr := validation.ParseDeadline(input.Deadline)

	channel := input.Channel
	if channel == "" {
		channel = model.ChannelManual
	}

	t := model.NewTodo(ownerID, input.Title, input.Body, deadline, channel)
	res := validation.Check(t)
	if perr != nil {
		res.Valid = false
		res.Errors = append(res.Errors, "deadline must be a valid date (YYYY-MM-DD)")
	}
	if !res.Valid {
		return nil, &ValidationError{Result: res}
	}

	if err := s.todos.Create(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate runs the business rules against a draft without persisting
// anything. Exposed for pre-submission form checks.
func (s *TodoService) Validate(input CreateTodoInput) validation.Result {
	deadline, perr := validation.ParseDeadline(input.Deadline)
	t := model.Todo{Title: input.Title, Body: input.Body, Deadline: deadline, Score: model.DefaultScore}
	res := validation.Check(t)
	if perr != nil {
		res.Valid = false
		res.Errors = append(res.Errors, "deadline must be a valid date (YYYY-MM-DD)")
	}
	return res
}

// TodoDetail pairs a todo with its completion moment, when one exists.
type TodoDetail struct {
	Todo        *model.Todo `json:"todo"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// Get returns the owner's todo together with its completion moment.
func (s *TodoService) Get(ctx context.Context, ownerID, id uuid.UUID) (detail *TodoDetail, err error) {
	defer guard(&err)

	owns, err := s.todos.Owns(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, ErrNotFoundOrDenied
	}

	todo, err := s.todos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrNotFoundOrDenied
		}
		return nil, err
	}

	detail = &TodoDetail{Todo: todo}
	if todo.IsCompleted() {
		completion, cerr := s.completions.GetByTodo(ctx, id)
		if cerr != nil {
			return nil, cerr
		}
		if completion != nil {
			detail.CompletedAt = &completion.CompletedAt
		}
	}
	return detail, nil
}

// Update merges the given fields into the owner's todo. The ownership
// gate runs first; the merged record is re-validated before persisting.
func (s *TodoService) Update(ctx context.Context, ownerID, id uuid.UUID, input UpdateTodoInput) (todo *model.Todo, err error) {
	defer guard(&err)

	owns, err := s.todos.Owns(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, ErrNotFoundOrDenied
	}

	current, err := s.todos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrNotFoundOrDenied
		}
		return nil, err
	}

	merged := *current
	fields := map[string]interface{}{}

	if input.Title != nil {
		merged = merged.WithTitle(*input.Title)
		fields["title"] = *input.Title
	}
	if input.Body != nil {
		merged = merged.WithBody(*input.Body)
		fields["body"] = *input.Body
	}
	var deadlineReason string
	if input.Deadline != nil {
		d, perr := validation.ParseDeadline(*input.Deadline)
		if perr != nil {
			deadlineReason = "deadline must be a valid date (YYYY-MM-DD)"
		} else {
			merged = merged.WithDeadline(d)
			fields["deadline"] = d
		}
	}
	if input.Score != nil {
		merged = merged.WithScore(*input.Score)
		fields["score"] = *input.Score
	}

	res := validation.Check(merged)
	if deadlineReason != "" {
		res.Valid = false
		res.Errors = append(res.Errors, deadlineReason)
	}
	if !res.Valid {
		return nil, &ValidationError{Result: res}
	}

	if len(fields) == 0 {
		return current, nil
	}
	fields["updated_at"] = merged.UpdatedAt

	if err := s.todos.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrNotFoundOrDenied
		}
		return nil, err
	}
	return &merged, nil
}

// Complete marks the owner's todo completed and records the moment.
func (s *TodoService) Complete(ctx context.Context, ownerID, id uuid.UUID) (err error) {
	defer guard(&err)

	owns, err := s.todos.Owns(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !owns {
		return ErrNotFoundOrDenied
	}

	if err := s.todos.SetStatus(ctx, id, model.StatusCompleted); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return ErrNotFoundOrDenied
		}
		return err
	}
	return s.completions.Mark(ctx, id, ownerID, time.Now())
}

// Reopen returns a completed todo to the open state and drops its
// completion marker.
func (s *TodoService) Reopen(ctx context.Context, ownerID, id uuid.UUID) (err error) {
	defer guard(&err)

	owns, err := s.todos.Owns(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !owns {
		return ErrNotFoundOrDenied
	}

	if err := s.todos.SetStatus(ctx, id, model.StatusOpen); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return ErrNotFoundOrDenied
		}
		return err
	}
	return s.completions.Clear(ctx, id)
}

// Delete removes the owner's todo together with its comparison history
// and completion record.
func (s *TodoService) Delete(ctx context.Context, ownerID, id uuid.UUID) (err error) {
	defer guard(&err)

	owns, err := s.todos.Owns(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !owns {
		return ErrNotFoundOrDenied
	}

	if err := s.todos.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return ErrNotFoundOrDenied
		}
		return err
	}
	return nil
}

// BulkUpdateScores applies every update that passes ownership and
// non-negativity checks, and reports the count that did not. Writes for
// failed entries are never issued. A storage error is a total failure.
func (s *TodoService) BulkUpdateScores(ctx context.Context, ownerID uuid.UUID, updates []model.ScoreUpdate) (out *BulkOutcome, err error) {
	defer guard(&err)

	var apply []model.ScoreUpdate
	failed := 0
	for _, u := range updates {
		if u.Score < 0 {
			failed++
			continue
		}
		owns, oerr := s.todos.Owns(ctx, u.TodoID, ownerID)
		if oerr != nil {
			return nil, oerr
		}
		if !owns {
			failed++
			continue
		}
		apply = append(apply, u)
	}

	if len(apply) > 0 {
		if err := s.todos.BulkUpdateScores(ctx, apply); err != nil {
			return nil, err
		}
	}

	out = &BulkOutcome{Updated: len(apply), Failed: failed}
	if failed > 0 {
		return out, fmt.Errorf("%d score updates failed", failed)
	}
	return out, nil
}
