package shared

import (
	"errors"
	"fmt"
)

// Domain error codes
const (
	CodeNotFound            = "NOT_FOUND"
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"
	CodeCoercion            = "COERCION_ERROR"
	CodeInvalidInput        = "INVALID_INPUT"
)

// FieldError describes a problem with a single submitted field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DomainError represents a domain-level error
type DomainError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, ErrNotFound) matches any not-found error.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrConstraintViolation = NewDomainError(CodeConstraintViolation, "Constraint violation")
	ErrCoercion            = NewDomainError(CodeCoercion, "Field could not be parsed")
	ErrInvalidInput        = NewDomainError(CodeInvalidInput, "Invalid input provided")
)

// NewNotFoundError reports that no row exists for the given entity key
func NewNotFoundError(entity string, key any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %v not found", entity, key))
}

// NewConstraintViolation reports a uniqueness or reference rule being broken
func NewConstraintViolation(message string) *DomainError {
	return NewDomainError(CodeConstraintViolation, message)
}

// NewCoercionError reports a submitted field that could not be converted
// to its semantic type.
func NewCoercionError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeCoercion,
		Message: fmt.Sprintf("Invalid value for %s: %s", field, message),
		Details: []FieldError{{Field: field, Message: message}},
	}
}

// NewInvalidInputError reports a well-typed value that breaks a domain rule
func NewInvalidInputError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidInput,
		Message: fmt.Sprintf("Invalid %s: %s", field, message),
		Details: []FieldError{{Field: field, Message: message}},
	}
}

// IsNotFound reports whether err is a not-found domain error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConstraintViolation reports whether err is a constraint violation
func IsConstraintViolation(err error) bool {
	return errors.Is(err, ErrConstraintViolation)
}

// IsCoercionError reports whether err is a coercion error
func IsCoercionError(err error) bool {
	return errors.Is(err, ErrCoercion)
}
