package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"focusflow/internal/model"
)

type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// Create adds a new todo to the database
func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

// GetByID retrieves a todo by its ID
func (r *TodoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Todo, error) {
	var todo model.Todo
	result := r.db.WithContext(ctx).First(&todo, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, result.Error
	}
	return &todo, nil
}

// FindByOwner retrieves an owner's todos, newest first, narrowed by filter
func (r *TodoRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter model.TodoFilter) ([]model.Todo, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.OverdueOnly {
		q = q.Where("deadline IS NOT NULL AND deadline < CURRENT_DATE")
	}

	var todos []model.Todo
	result := q.Order("created_at DESC").Find(&todos)
	if result.Error != nil {
		return nil, result.Error
	}
	return todos, nil
}

// Owns reports whether the todo exists and belongs to the given owner
func (r *TodoRepository) Owns(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Todo{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateFields applies a partial field merge to a todo
func (r *TodoRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Todo{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// SetStatus transitions a todo between open and completed
func (r *TodoRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).Model(&model.Todo{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// BulkUpdateScores writes every score in one transaction
func (r *TodoRepository) BulkUpdateScores(ctx context.Context, updates []model.ScoreUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			result := tx.Model(&model.Todo{}).
				Where("id = ?", u.TodoID).
				Updates(map[string]interface{}{"score": u.Score, "updated_at": time.Now()})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrTodoNotFound
			}
		}
		return nil
	})
}

// DeleteCascade removes a todo together with its comparison history and
// completion record
func (r *TodoRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("winner_id = ? OR loser_id = ?", id, id).
			Delete(&model.Comparison{}).Error; err != nil {
			return err
		}
		if err := tx.Where("todo_id = ?", id).
			Delete(&model.Completion{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Todo{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTodoNotFound
		}
		return nil
	})
}

// Stats aggregates the dashboard counters for one owner
func (r *TodoRepository) Stats(ctx context.Context, ownerID uuid.UUID) (*model.Stats, error) {
	var stats model.Stats
	err := r.db.WithContext(ctx).Model(&model.Todo{}).
		Select(
			"count(*) AS total, "+
				"count(*) FILTER (WHERE status = ?) AS active, "+
				"count(*) FILTER (WHERE status = ?) AS completed, "+
				"count(*) FILTER (WHERE status = ? AND deadline IS NOT NULL AND deadline < CURRENT_DATE) AS overdue",
			model.StatusOpen, model.StatusCompleted, model.StatusOpen,
		).
		Where("owner_id = ?", ownerID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
