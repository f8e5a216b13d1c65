package model

import (
	"time"

	"github.com/google/uuid"
)

// Todo statuses
const (
	StatusOpen      = "open"
	StatusCompleted = "completed"
)

// Creation channels describe where a todo came from
const (
	ChannelManual       = "manual"
	ChannelSlackWebhook = "slack_webhook"
	ChannelSlackURL     = "slack_url"
)

// DefaultScore is the importance score assigned to a freshly created todo.
const DefaultScore = 1000.0

type Todo struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OwnerID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title     string     `json:"title"`
	Body      string     `gorm:"not null" json:"body"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	Score     float64    `gorm:"not null;default:1000" json:"score"`
	Status    string     `gorm:"not null;default:'open';check:status IN ('open', 'completed')" json:"status"`
	Channel   string     `gorm:"not null;default:'manual'" json:"channel"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// NewTodo builds an open todo with the default score. Validation happens
// in the validation package, not here.
func NewTodo(ownerID uuid.UUID, title, body string, deadline *time.Time, channel string) Todo {
	now := time.Now()
	return Todo{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		Body:      body,
		Deadline:  deadline,
		Score:     DefaultScore,
		Status:    StatusOpen,
		Channel:   channel,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// The With* helpers return an updated copy and never mutate the receiver.
// UpdatedAt is bumped monotonically.

func (t Todo) WithTitle(title string) Todo {
	t.Title = title
	t.touch()
	return t
}

func (t Todo) WithBody(body string) Todo {
	t.Body = body
	t.touch()
	return t
}

func (t Todo) WithDeadline(deadline *time.Time) Todo {
	t.Deadline = deadline
	t.touch()
	return t
}

func (t Todo) WithScore(score float64) Todo {
	t.Score = score
	t.touch()
	return t
}

func (t Todo) Completed() Todo {
	t.Status = StatusCompleted
	t.touch()
	return t
}

func (t Todo) Reopened() Todo {
	t.Status = StatusOpen
	t.touch()
	return t
}

func (t *Todo) touch() {
	if now := time.Now(); now.After(t.UpdatedAt) {
		t.UpdatedAt = now
	}
}

func (t Todo) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Overdue reports whether the deadline's calendar date has passed.
// Time of day is ignored.
func (t Todo) Overdue(now time.Time) bool {
	if t.Deadline == nil {
		return false
	}
	d := *t.Deadline
	deadlineDay := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return deadlineDay.Before(today)
}

// TodoFilter narrows owner-scoped queries.
type TodoFilter struct {
	Status      string // empty means any status
	OverdueOnly bool
}

// ScoreUpdate is one entry of a bulk score write.
type ScoreUpdate struct {
	TodoID uuid.UUID
	Score  float64
}

// Stats are the aggregate counters shown on the dashboard.
type Stats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Overdue   int64 `json:"overdue"`
}
