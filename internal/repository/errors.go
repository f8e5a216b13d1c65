package repository

import "errors"

// Common repository errors
var (
	// ErrTodoNotFound is returned when a todo is not found
	ErrTodoNotFound = errors.New("todo not found")

	// ErrRatingIncomplete is returned when only one side of a paired
	// score update took effect; the surrounding transaction rolls back.
	ErrRatingIncomplete = errors.New("rating update incomplete")
)
