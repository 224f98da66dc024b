package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError([]FieldError{
		{Field: "sku", Error: "is required"},
		{Field: "price", Error: "must be a number"},
	})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, CodeValidationError, err.Code)
	assert.Equal(t, "Validation Error: sku is required, price must be a number", err.Message)
	assert.Len(t, err.Errors, 2)

	assert.Equal(t, "Validation Error", NewValidationError(nil).Message)
}

func TestNewInvalidFieldsError(t *testing.T) {
	err := NewInvalidFieldsError([]string{"invalid", "colour"})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, CodeInvalidFields, err.Code)
	assert.Equal(t, "Invalid fields: invalid, colour", err.Message)
	require.Len(t, err.Errors, 2)
	assert.Equal(t, "colour", err.Errors[1].Field)
}

func TestNewStorageError(t *testing.T) {
	err := NewStorageError("Product update failed")

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", err.Code)
	assert.Equal(t, "Product update failed", err.Error())
}

func TestHTTPError_Is(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NewNotFoundError("Product not found", false, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHTTPError_WithMessage(t *testing.T) {
	base := NewBadRequestError("bad", false, nil, nil, nil)
	custom := base.WithMessage("worse")

	assert.Equal(t, "bad", base.Message)
	assert.Equal(t, "worse", custom.Message)
	assert.Equal(t, base.Code, custom.Code)
}
