// Package apperr defines the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("access denied")
	ErrUnauthenticated = errors.New("authentication required")
	ErrValidation      = errors.New("validation failed")
)

// Issue is a single validation problem, optionally bound to a field path.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationError aggregates issues and matches ErrValidation via errors.Is.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Field != "" {
			parts = append(parts, is.Field+": "+is.Message)
		} else {
			parts = append(parts, is.Message)
		}
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid returns a ValidationError, or nil when issues is empty.
func Invalid(issues ...Issue) error {
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

// Invalidf builds a single-issue ValidationError.
func Invalidf(field, format string, args ...interface{}) error {
	return &ValidationError{Issues: []Issue{{Field: field, Message: fmt.Sprintf(format, args...)}}}
}

// NotFound wraps ErrNotFound with the entity name, e.g. "form not found".
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// Forbidden wraps ErrForbidden with a reason.
func Forbidden(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrForbidden)
}
