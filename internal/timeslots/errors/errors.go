package errors

import "errors"

var (
	ErrNotFound = errors.New("time slot not found")
	// ErrUpdateNotApplied means the conditional write matched no document:
	// the slot is gone or its booked flag no longer holds the expected value.
	ErrUpdateNotApplied = errors.New("time slot update not applied")
)
