// Package apperror defines the domain error taxonomy shared by services and
// handlers. Services raise these; handlers map them to transport codes.
// Store-level integrity violations (unique constraints) are not translated
// here: they propagate as gorm errors and the handler layer maps them.
package apperror

import (
	"errors"
	"fmt"
)

// ReferenceNotFoundError reports that a foreign id supplied by the caller
// (customer, product, category, order item) does not exist. It is raised
// synchronously before any write. The message is used verbatim in API
// responses.
type ReferenceNotFoundError struct {
	Message string
}

func (e *ReferenceNotFoundError) Error() string { return e.Message }

func NewReferenceNotFound(format string, args ...any) *ReferenceNotFoundError {
	return &ReferenceNotFoundError{Message: fmt.Sprintf(format, args...)}
}

func IsReferenceNotFound(err error) bool {
	var target *ReferenceNotFoundError
	return errors.As(err, &target)
}

// ConflictError reports a referential guard violation: the target entity is
// still referenced by other rows and cannot be deleted.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflict(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// ValidationError reports invalid input that passed transport binding but
// failed a domain rule.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
