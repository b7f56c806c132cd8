package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrResourceLocked        = errors.New("resource locked")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
