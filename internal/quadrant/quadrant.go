package quadrant

import (
	"time"

	"focusflow/internal/model"
)

// Quadrant is one of the four urgency/importance buckets.
type Quadrant string

const (
	UrgentImportant       Quadrant = "urgent_important"
	NotUrgentImportant    Quadrant = "not_urgent_important"
	UrgentNotImportant    Quadrant = "urgent_not_important"
	NotUrgentNotImportant Quadrant = "not_urgent_not_important"
)

// ImportanceThreshold is the score at and above which a todo counts as important.
const ImportanceThreshold = 1200.0

// UrgencyWindow is how far ahead a deadline may be and still count as urgent.
const UrgencyWindow = 24 * time.Hour

// Urgent reports whether the todo's deadline has passed (date-only) or
// falls within the urgency window of now (time-of-day precision).
// A todo with no deadline is never urgent.
func Urgent(t model.Todo, now time.Time) bool {
	if t.Deadline == nil {
		return false
	}
	if t.Overdue(now) {
		return true
	}
	return !t.Deadline.After(now.Add(UrgencyWindow))
}

func Important(t model.Todo) bool {
	return t.Score >= ImportanceThreshold
}

// Classify maps a todo to its quadrant. Pure: deterministic for a fixed now.
func Classify(t model.Todo, now time.Time) Quadrant {
	urgent := Urgent(t, now)
	important := Important(t)
	switch {
	case urgent && important:
		return UrgentImportant
	case important:
		return NotUrgentImportant
	case urgent:
		return UrgentNotImportant
	default:
		return NotUrgentNotImportant
	}
}

// Group buckets todos by quadrant, preserving input order within each bucket.
func Group(todos []model.Todo, now time.Time) map[Quadrant][]model.Todo {
	groups := map[Quadrant][]model.Todo{
		UrgentImportant:       {},
		NotUrgentImportant:    {},
		UrgentNotImportant:    {},
		NotUrgentNotImportant: {},
	}
	for _, t := range todos {
		q := Classify(t, now)
		groups[q] = append(groups[q], t)
	}
	return groups
}
