package app

import (
	"errors"
	"fmt"
)

// ValidationError rejects an operation before any state changes: empty
// letter text, a missing API key, a duplicate fortune request, or a
// destructive action without confirmation.
type ValidationError struct {
	msg string
}

func validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return "app: " + e.msg }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// GenerationError wraps a failed text-generation call. The underlying
// provider message is preserved for display; the user's own letter is never
// rolled back because of one.
type GenerationError struct {
	err error
}

func (e *GenerationError) Error() string { return e.err.Error() }
func (e *GenerationError) Unwrap() error { return e.err }

// IsGeneration reports whether err is a GenerationError.
func IsGeneration(err error) bool {
	var g *GenerationError
	return errors.As(err, &g)
}
