package db

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks rejected caller input; the store is left untouched
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned by lookups of a single task
	ErrNotFound = errors.New("not found")
	// ErrStorage wraps failures of the underlying database
	ErrStorage = errors.New("storage failure")
)

// ValidationError describes which field was rejected and why
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// storageErr tags a driver error so callers can detect it with errors.Is
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
