package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals malformed request parameters. Raised before any store access.
	ErrInvalidInput = errors.New("invalid input")
	// ErrModelNotFound signals a model or pricing identity that does not resolve.
	ErrModelNotFound = errors.New("model not found")
	// ErrNotFound signals a missing provider or field.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable signals that the catalog store failed to answer.
	ErrStoreUnavailable = errors.New("catalog store unavailable")
	// ErrNoBenchmarkData signals an aggregate over zero benchmark rows.
	ErrNoBenchmarkData = errors.New("no benchmark data")
	// ErrInvalidCatalog signals an import snapshot that breaks catalog rules.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// ValidationError wraps ErrInvalidInput with the offending parameter.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError creates an invalid input error for a named parameter.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
