package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrUnknownUser        = errors.New("unknown user")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrForbidden          = errors.New("forbidden")
	ErrCancelled          = errors.New("cancelled")
)

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a referenced document, folder, tag,
	// annotation or version does not exist
	NotFoundError struct {
		Resource string
		ID       string
	}

	// ValidationError indicates malformed input. The operation was not performed.
	ValidationError struct {
		Field   string
		Message string
	}

	// UnknownUserError indicates a permission change for a user outside the known user set
	UnknownUserError struct {
		UserID string
	}

	// InvariantViolationError indicates the store found itself in a state it
	// must never be in (e.g. a folder cycle). The operation was aborted.
	InvariantViolationError struct {
		Message string
	}

	// ForbiddenError indicates the acting user lacks the required permission level
	ForbiddenError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

func (e *UnknownUserError) Error() string {
	return fmt.Sprintf("unknown user %q", e.UserID)
}

func (e *InvariantViolationError) Error() string { return "invariant violation: " + e.Message }
func (e *ForbiddenError) Error() string          { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int           { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int         { return http.StatusBadRequest }
func (e *UnknownUserError) StatusCode() int        { return http.StatusUnprocessableEntity }
func (e *InvariantViolationError) StatusCode() int { return http.StatusConflict }
func (e *ForbiddenError) StatusCode() int          { return http.StatusForbidden }

// Is allows errors.Is() to match the typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool           { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool         { return target == ErrValidation }
func (e *UnknownUserError) Is(target error) bool        { return target == ErrUnknownUser }
func (e *InvariantViolationError) Is(target error) bool { return target == ErrInvariantViolation }
func (e *ForbiddenError) Is(target error) bool          { return target == ErrForbidden }

// NewNotFound is a shorthand for &NotFoundError{...}
func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// NewValidation is a shorthand for &ValidationError{...}
func NewValidation(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
