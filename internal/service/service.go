// Package service holds the prioritization use cases. Every operation
// returns its payload plus an error whose message is the short
// human-readable failure reason shown to the caller. Panics escaping a
// use case are normalized to ErrUnknown.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"focusflow/internal/model"
	"focusflow/internal/validation"
)

// ErrNotFoundOrDenied covers both a missing todo and a todo owned by
// another user. The two cases are deliberately indistinguishable so
// callers cannot probe for existence.
var ErrNotFoundOrDenied = errors.New("Todo not found or access denied")

// ErrUnknown replaces anything unexpected escaping a use case.
var ErrUnknown = errors.New("unknown error")

// ErrSelfComparison rejects a comparison of a todo against itself.
var ErrSelfComparison = errors.New("cannot compare a todo with itself")

// ValidationError carries the full ordered list of violated rules.
type ValidationError struct {
	Result validation.Result
}

func (e *ValidationError) Error() string {
	return e.Result.Join()
}

// TodoStore is the storage capability set the todo use cases need.
type TodoStore interface {
	Create(ctx context.Context, todo *model.Todo) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Todo, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter model.TodoFilter) ([]model.Todo, error)
	Owns(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	BulkUpdateScores(ctx context.Context, updates []model.ScoreUpdate) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, ownerID uuid.UUID) (*model.Stats, error)
}

// ComparisonStore persists comparisons together with both adjusted scores.
type ComparisonStore interface {
	CreateWithRating(ctx context.Context, cmp *model.Comparison, winnerScore, loserScore float64) error
	FindHistory(ctx context.Context, ownerID uuid.UUID) ([]model.Comparison, error)
}

// CompletionStore maintains completion markers.
type CompletionStore interface {
	Mark(ctx context.Context, todoID, ownerID uuid.UUID, completedAt time.Time) error
	Clear(ctx context.Context, todoID uuid.UUID) error
	GetByTodo(ctx context.Context, todoID uuid.UUID) (*model.Completion, error)
}

// guard converts an escaped panic into ErrUnknown instead of killing the
// process. Used via defer at every use-case boundary.
func guard(err *error) {
	if r := recover(); r != nil {
		*err = ErrUnknown
	}
}
