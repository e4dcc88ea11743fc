package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed or missing query arguments.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSearchBudgetExceeded is returned when an enumeration explores more
	// partial walks than the configured budget allows.
	ErrSearchBudgetExceeded = errors.New("search budget exceeded")
)

// InvalidInputError describes which argument was rejected and why.
type InvalidInputError struct {
	Field  string
	Reason string
}

// InvalidInput builds an *InvalidInputError for the named argument.
func InvalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

// Is lets errors.Is match ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
