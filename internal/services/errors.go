package services

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or malformed field in a request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewMissingFieldError creates a ValidationError for an absent required field
func NewMissingFieldError(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("Missing required field: %s", field),
	}
}

// NewInvalidValueError creates a ValidationError for a field whose value is
// outside its enumerated set
func NewInvalidValueError(field, value string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("Invalid value for %s: %s", field, value),
	}
}

// NotFoundError reports that no record matched the given id.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// NoOpError reports an update request whose allow-listed intersection is
// empty, i.e. there is nothing admins are permitted to change in it.
type NoOpError struct{}

func (e *NoOpError) Error() string {
	return "No valid fields to update"
}

// PersistenceError wraps an underlying store failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// UnauthorizedError reports a failed or missing authentication.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

// NewUnauthorizedError creates a new UnauthorizedError
func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

// IsValidation checks if error is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound checks if error is a NotFoundError
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsNoOp checks if error is a NoOpError
func IsNoOp(err error) bool {
	var noe *NoOpError
	return errors.As(err, &noe)
}

// IsUnauthorized checks if error is an UnauthorizedError
func IsUnauthorized(err error) bool {
	var ue *UnauthorizedError
	return errors.As(err, &ue)
}
