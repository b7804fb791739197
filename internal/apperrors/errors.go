// Package apperrors defines the error kinds the catalog service reports to its
// API boundary: not-found lookups, rejected payloads, and failed writes.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError indicates a lookup by ID matched no product.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Resource, e.ID)
}

// NewProductNotFound returns a NotFoundError for a product ID.
func NewProductNotFound(id uint) *NotFoundError {
	return &NotFoundError{Resource: "product", ID: id}
}

// ValidationError aggregates every field-level violation found on an inbound
// payload. It is always raised before any write is attempted.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// ConflictError indicates a write collided with a record that already exists,
// such as a registration reusing a taken username or email.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s '%s' is already in use", e.Field, e.Value)
}

// OperationError indicates a write failed after validation passed. It wraps
// the underlying store failure as its cause.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("error %s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
