// Package validation checks todo business rules. Every violated rule is
// collected, never short-circuited on the first failure.
package validation

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"

	"focusflow/internal/model"
)

const (
	TitleMaxLen = 200
	BodyMaxLen  = 5000
)

// DeadlineLayout is the accepted wire format for deadlines.
const DeadlineLayout = "2006-01-02"

// Result carries the outcome of a validation pass. Errors preserves the
// order in which rules were checked.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Check validates a todo's field constraints and returns every violation.
func Check(t model.Todo) Result {
	var errs []string

	body := strings.TrimSpace(t.Body)
	if body == "" {
		errs = append(errs, "body is required")
	} else if utf8.RuneCountInString(body) > BodyMaxLen {
		errs = append(errs, "body must be at most 5000 characters")
	}

	if utf8.RuneCountInString(t.Title) > TitleMaxLen {
		errs = append(errs, "title must be at most 200 characters")
	}

	if t.Score < 0 {
		errs = append(errs, "score must not be negative")
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Join flattens the collected reasons into the single string used at the
// use-case boundary.
func (r Result) Join() string {
	if r.Valid {
		return ""
	}
	var merr *multierror.Error
	for _, reason := range r.Errors {
		merr = multierror.Append(merr, errors.New(reason))
	}
	merr.ErrorFormat = func(errs []error) string {
		parts := make([]string, len(errs))
		for i, e := range errs {
			parts[i] = e.Error()
		}
		return strings.Join(parts, "; ")
	}
	return merr.Error()
}

// ParseDeadline parses an ISO-8601 date, returning nil for the empty string.
func ParseDeadline(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(DeadlineLayout, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
