package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrIncompleteData        = errors.New("incomplete data")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
