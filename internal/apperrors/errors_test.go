package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"catalog/internal/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := apperrors.NewProductNotFound(42)
	assert.Equal(t, "product not found with id: 42", err.Error())
	assert.True(t, apperrors.IsNotFound(err))
	assert.True(t, apperrors.IsNotFound(fmt.Errorf("lookup: %w", err)))
	assert.False(t, apperrors.IsNotFound(errors.New("something else")))
}

func TestValidationError(t *testing.T) {
	err := &apperrors.ValidationError{Messages: []string{"Name cannot be blank", "Price must be positive or zero"}}
	assert.Contains(t, err.Error(), "Name cannot be blank")
	assert.Contains(t, err.Error(), "Price must be positive or zero")
	assert.True(t, apperrors.IsValidation(err))
	assert.False(t, apperrors.IsValidation(apperrors.NewProductNotFound(1)))
}

func TestConflictError(t *testing.T) {
	err := &apperrors.ConflictError{Field: "username", Value: "clerk"}
	assert.Equal(t, "username 'clerk' is already in use", err.Error())
	assert.True(t, apperrors.IsConflict(err))
	assert.True(t, apperrors.IsConflict(fmt.Errorf("register: %w", err)))
	assert.False(t, apperrors.IsConflict(apperrors.NewProductNotFound(1)))
}

func TestOperationErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &apperrors.OperationError{Op: "adding product", Err: cause}
	assert.Contains(t, err.Error(), "adding product")
	assert.ErrorIs(t, err, cause)
}
