package errs

import (
	"fmt"
	"net/http"
	"strings"
)

// Codes for the error kinds that are not plain HTTP status texts.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeInvalidFields   = "INVALID_FIELDS"
)

// ValidationErrorMessage prefixes every request validation failure.
const ValidationErrorMessage = "Validation Error"

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// This supports extra payload:
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
//   - action: optional client instruction (e.g. redirect)
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the underlying error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// NewStorageError creates a 500 for a failed storage mutation.
//
// Unlike NewInternalServerError the message names the failed operation
// (e.g. "Product update failed"), which clients are allowed to display.
func NewStorageError(message string) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  message,
		Status:   http.StatusInternalServerError,
		Override: true,
	}
}

// NewValidationError creates the 400 returned for malformed, missing or
// mistyped request body fields.
//
// Example message:
//
//	"Validation Error: sku is required, price must be a number"
func NewValidationError(fieldErrors []FieldError) *HTTPError {
	message := ValidationErrorMessage
	if len(fieldErrors) > 0 {
		parts := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			parts = append(parts, fe.Field+" "+fe.Error)
		}
		message = fmt.Sprintf("%s: %s", ValidationErrorMessage, strings.Join(parts, ", "))
	}

	code := CodeValidationError
	return NewBadRequestError(message, true, &code, fieldErrors, nil)
}

// NewInvalidFieldsError creates the 400 returned when a field selection
// names attributes the resource does not have.
func NewInvalidFieldsError(fields []string) *HTTPError {
	fieldErrors := make([]FieldError, 0, len(fields))
	for _, f := range fields {
		fieldErrors = append(fieldErrors, FieldError{
			Field: f,
			Error: "is not a selectable field",
		})
	}

	code := CodeInvalidFields
	return NewBadRequestError("Invalid fields: "+strings.Join(fields, ", "), true, &code, fieldErrors, nil)
}

// ValidationError converts a generic validation error into a 400 Bad Request HTTPError.
func ValidationError(err error) *HTTPError {
	code := CodeValidationError
	return NewBadRequestError(ValidationErrorMessage+": "+err.Error(), false, &code, nil, nil)
}
