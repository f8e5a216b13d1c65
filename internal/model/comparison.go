package model

import (
	"time"

	"github.com/google/uuid"
)

// Comparison записывает исход одного парного выбора между двумя задачами
type Comparison struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	WinnerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"winner_id"`
	LoserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"loser_id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Winner Todo `gorm:"foreignKey:WinnerID" json:"-"`
	Loser  Todo `gorm:"foreignKey:LoserID" json:"-"`
	Owner  User `gorm:"foreignKey:OwnerID" json:"-"`
}
