package errors

import "errors"

var (
	ErrObjectNotFound = errors.New("import object not found")
	ErrMissingFile    = errors.New("upload has no file part")
	ErrInvalidHeader  = errors.New("unexpected import header")
)
