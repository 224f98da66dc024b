package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/product-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        `duplicate key value violates unique constraint "products_sku_key"`,
		TableName:      "products",
		ConstraintName: "products_sku_key",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("insert: %w", pgErr)))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "PRODUCT_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Product with this Sku already exists", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "sku", httpErr.Errors[0].Field)
}

func TestHandleError_CheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23514",
		TableName:      "products",
		ConstraintName: "products_price_check",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "PRODUCT_INVALID", httpErr.Code)
	assert.Equal(t, "The Price value does not meet required conditions", httpErr.Message)
}

func TestHandleError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502", TableName: "products", ColumnName: "name"}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "The Name is required", httpErr.Message)
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is required"}}, httpErr.Errors)
}

func TestHandleError_Fallbacks(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		httpErr := asHTTPError(t, HandleError(pgx.ErrNoRows))
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("unknown pg error", func(t *testing.T) {
		httpErr := asHTTPError(t, HandleError(&pgconn.PgError{Code: "XX000"}))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, "Internal Server Error", httpErr.Message)
	})

	t.Run("plain error", func(t *testing.T) {
		httpErr := asHTTPError(t, HandleError(errors.New("connection reset")))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	})

	t.Run("http error passes through", func(t *testing.T) {
		original := errs.NewNotFoundError("Product not found", false, nil)
		assert.Same(t, original, HandleError(original))
	})
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, ErrCode(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, CheckViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: "23514"})))
	assert.Equal(t, Other, ErrCode(errors.New("boom")))

	assert.True(t, IsConstraintViolation(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsConstraintViolation(&pgconn.PgError{Code: "22P02"}))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "sku", extractColumnForUniqueViolation("products_sku_key"))
	assert.Equal(t, "sku", extractColumnForUniqueViolation("unique_products_sku"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk"))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("weird"))
}
