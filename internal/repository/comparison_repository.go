package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"focusflow/internal/model"
)

type ComparisonRepository struct {
	db *gorm.DB
}

func NewComparisonRepository(db *gorm.DB) *ComparisonRepository {
	return &ComparisonRepository{db: db}
}

// CreateWithRating persists the comparison and both adjusted scores in a
// single transaction. Either everything lands or nothing does; a score
// update that hits zero rows aborts with ErrRatingIncomplete.
func (r *ComparisonRepository) CreateWithRating(ctx context.Context, cmp *model.Comparison, winnerScore, loserScore float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cmp).Error; err != nil {
			return err
		}

		now := time.Now()
		for _, upd := range []struct {
			id    uuid.UUID
			score float64
		}{
			{cmp.WinnerID, winnerScore},
			{cmp.LoserID, loserScore},
		} {
			result := tx.Model(&model.Todo{}).
				Where("id = ?", upd.id).
				Updates(map[string]interface{}{"score": upd.score, "updated_at": now})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrRatingIncomplete
			}
		}
		return nil
	})
}

// FindHistory returns an owner's comparison history, newest first
func (r *ComparisonRepository) FindHistory(ctx context.Context, ownerID uuid.UUID) ([]model.Comparison, error) {
	var comparisons []model.Comparison
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&comparisons)
	if result.Error != nil {
		return nil, result.Error
	}
	return comparisons, nil
}
