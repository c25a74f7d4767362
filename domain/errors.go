package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup by id yields nothing, e.g. a
	// stale or tampered product URL. Recoverable: render a not-found view.
	ErrNotFound = errors.New("not found")

	// ErrValidation is the class sentinel for user-input failures. Use
	// NewValidationError so the offending field travels with it.
	ErrValidation = errors.New("validation failed")

	// ErrOutOfStock is returned when an operation needs at least one unit
	// of a product that has none available.
	ErrOutOfStock = errors.New("out of stock")

	// ErrCheckoutInProgress is returned when an order submission is already
	// in flight for the same checkout.
	ErrCheckoutInProgress = errors.New("checkout submission already in progress")
)

// ValidationError reports which field failed a precondition. It matches
// errors.Is(err, ErrValidation) so callers can branch on the class without
// caring about the field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a field-level validation failure.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
