package tabulate

import (
	"errors"
	"fmt"
)

// ErrColumnNotFound is matched by every ColumnNotFoundError via errors.Is.
var ErrColumnNotFound = errors.New("column not found")

// ColumnNotFoundError reports a selector that resolved to zero or to more
// than one column.
type ColumnNotFoundError struct {
	Column  string
	Matches int
}

func (e *ColumnNotFoundError) Error() string {
	if e.Matches > 1 {
		return fmt.Sprintf("column %q is ambiguous: %d columns share that name", e.Column, e.Matches)
	}
	return fmt.Sprintf("column %q not found", e.Column)
}

func (e *ColumnNotFoundError) Is(target error) bool { return target == ErrColumnNotFound }

// Warning is a non-fatal anomaly reported next to a complete Result.
type Warning interface {
	Warning() string
}

// TypeCoercionWarning is emitted when a numeric counter column was binned
// into categories.
type TypeCoercionWarning struct {
	Column string
}

func (w TypeCoercionWarning) Warning() string {
	return fmt.Sprintf("%s converted from numeric to categorical", w.Column)
}

// RemovedMissingWarning is emitted when rows with a missing counter value
// were dropped.
type RemovedMissingWarning struct {
	Column string
	Count  int
}

func (w RemovedMissingWarning) Warning() string {
	return fmt.Sprintf("removed %d rows with missing %s", w.Count, w.Column)
}
