package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"focusflow/internal/model"
	"focusflow/internal/rating"
	"focusflow/internal/repository"
)

type ComparisonService struct {
	todos       TodoStore
	comparisons ComparisonStore
}

func NewComparisonService(todos TodoStore, comparisons ComparisonStore) *ComparisonService {
	return &ComparisonService{todos: todos, comparisons: comparisons}
}

// Compare records a forced choice between two of the owner's todos and
// applies the rating adjustment to both scores atomically. Repeating the
// same comparison counts as a fresh observation and shifts the scores
// again.
func (s *ComparisonService) Compare(ctx context.Context, ownerID, winnerID, loserID uuid.UUID) (cmp *model.Comparison, err error) {
	defer guard(&err)

	if winnerID == loserID {
		return nil, ErrSelfComparison
	}

	for _, id := range []uuid.UUID{winnerID, loserID} {
		owns, oerr := s.todos.Owns(ctx, id, ownerID)
		if oerr != nil {
			return nil, oerr
		}
		if !owns {
			return nil, ErrNotFoundOrDenied
		}
	}

	winner, err := s.todos.GetByID(ctx, winnerID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	loser, err := s.todos.GetByID(ctx, loserID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	outcome := rating.Rate(winner.Score, loser.Score)

	c := &model.Comparison{
		ID:        uuid.New(),
		WinnerID:  winnerID,
		LoserID:   loserID,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}
	if err := s.comparisons.CreateWithRating(ctx, c, outcome.WinnerScore, outcome.LoserScore); err != nil {
		return nil, err
	}
	return c, nil
}

// History returns the owner's comparison log, newest first.
func (s *ComparisonService) History(ctx context.Context, ownerID uuid.UUID) (history []model.Comparison, err error) {
	defer guard(&err)
	return s.comparisons.FindHistory(ctx, ownerID)
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrTodoNotFound) {
		return ErrNotFoundOrDenied
	}
	return err
}
