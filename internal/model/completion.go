package model

import (
	"time"

	"github.com/google/uuid"
)

// Completion marks when a todo most recently transitioned to completed.
// It is removed when the todo is reopened or deleted.
type Completion struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TodoID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"todo_id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	CompletedAt time.Time `gorm:"not null" json:"completed_at"`

	Todo Todo `gorm:"foreignKey:TodoID" json:"-"`
}
