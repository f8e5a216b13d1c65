package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"focusflow/internal/model"
)

type CompletionRepository struct {
	db *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

// Mark records the completion moment for a todo. Completing an already
// completed todo refreshes the timestamp.
func (r *CompletionRepository) Mark(ctx context.Context, todoID, ownerID uuid.UUID, completedAt time.Time) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO completions (id, todo_id, owner_id, completed_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (todo_id) DO UPDATE SET completed_at = EXCLUDED.completed_at`,
		uuid.New(), todoID, ownerID, completedAt,
	).Error
}

// Clear removes the completion record, if any
func (r *CompletionRepository) Clear(ctx context.Context, todoID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("todo_id = ?", todoID).Delete(&model.Completion{}).Error
}

// GetByTodo returns the completion record for a todo, or nil if absent
func (r *CompletionRepository) GetByTodo(ctx context.Context, todoID uuid.UUID) (*model.Completion, error) {
	var completion model.Completion
	err := r.db.WithContext(ctx).Where("todo_id = ?", todoID).First(&completion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &completion, nil
}
