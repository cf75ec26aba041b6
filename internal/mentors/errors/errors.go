package errors

import "errors"

var (
	ErrNotFound = errors.New("mentor not found")
)
