// Package domain contains the core business entities for HBnB.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations.
// Every failure returned by the entities and the facade wraps exactly one of them,
// so callers classify with errors.Is.

var (
	// ===========================================
	// Field Validation
	// ===========================================

	// ErrTypeMismatch indicates a value of the wrong kind (e.g. a number where a string is expected).
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrConstraintViolation indicates a value of the right kind that is out of bounds:
	// empty string, length overflow, out-of-range number, malformed email.
	ErrConstraintViolation = errors.New("constraint violation")

	// ===========================================
	// Relationships and Uniqueness
	// ===========================================

	// ErrReferenceNotFound indicates a foreign key that does not resolve at creation/update time.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrDuplicateEmail indicates another user already registered the email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrStillReferenced indicates a delete was refused because other entities point at the target.
	ErrStillReferenced = errors.New("entity is still referenced")

	// ===========================================
	// Lookup and Authentication
	// ===========================================

	// ErrNotFound indicates the lookup/update/delete target does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials indicates authentication failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FieldError describes a single rejected field value.
type FieldError struct {
	// Field is the record key of the rejected value (e.g. "first_name").
	Field string

	// Kind is ErrTypeMismatch or ErrConstraintViolation.
	Kind error

	// Message is a human readable description of the rule that failed.
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the kind sentinel for errors.Is.
func (e *FieldError) Unwrap() error {
	return e.Kind
}

func typeMismatch(field, format string, args ...any) error {
	return &FieldError{Field: field, Kind: ErrTypeMismatch, Message: fmt.Sprintf(format, args...)}
}

func constraintViolation(field, format string, args ...any) error {
	return &FieldError{Field: field, Kind: ErrConstraintViolation, Message: fmt.Sprintf(format, args...)}
}

// DomainError wraps a domain error with additional context.
type DomainError struct {
	// Err is the underlying domain error.
	Err error

	// Message provides additional context.
	Message string

	// Resource identifies the affected resource (e.g., an entity id or email).
	Resource string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Err.Error()
	}
	if e.Resource != "" {
		return fmt.Sprintf("%s (%s)", msg, e.Resource)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError with context.
func NewDomainError(err error, message, resource string) *DomainError {
	return &DomainError{
		Err:      err,
		Message:  message,
		Resource: resource,
	}
}

// IsValidationError reports whether err is a field-level rejection of either kind.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrTypeMismatch) || errors.Is(err, ErrConstraintViolation)
}
