package errs

import (
	"net/http"
)

// StorageFailureCode tags errors raised when the record store is unreachable
// or rejects a statement.
const StorageFailureCode = "STORAGE_FAILURE"

// NewBadRequestError creates a 400 HTTPError. code overrides the default
// "BAD_REQUEST" when non-nil.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
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
	}
}

// NewNotFoundError creates a 404 HTTPError.
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

// NewMethodNotAllowedError creates a 405 HTTPError.
func NewMethodNotAllowedError(message string) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusMethodNotAllowed)),
		Message:  message,
		Status:   http.StatusMethodNotAllowed,
		Override: true,
	}
}

// NewInternalServerError creates a generic 500 that reveals nothing.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// NewStorageError creates the 500 returned when the record store fails.
//
// The driver message is surfaced as "Connection failed: <message>"; storage
// failures abort the request and are never retried.
func NewStorageError(cause error) *HTTPError {
	return &HTTPError{
		Code:     StorageFailureCode,
		Message:  "Connection failed: " + cause.Error(),
		Status:   http.StatusInternalServerError,
		Override: true,
		cause:    cause,
	}
}

