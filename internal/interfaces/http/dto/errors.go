package dto

import (
	"net/http"

	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/internal/domain/shared"
)

// Domain error codes surfaced by the API. They match shared.DomainError codes
// so a domain error passes through to the client unchanged.
const (
	ErrCodeInvalidType        = inventory.CodeInvalidType
	ErrCodeMissingDestination = inventory.CodeMissingDestination
	ErrCodeMissingSource      = inventory.CodeMissingSource
	ErrCodeMissingLocations   = inventory.CodeMissingLocations
	ErrCodeInvalidLineItem    = inventory.CodeInvalidLineItem

	ErrCodeNotFound           = shared.CodeNotFound
	ErrCodeAlreadyExists      = shared.CodeAlreadyExists
	ErrCodeInvalidInput       = shared.CodeInvalidInput
	ErrCodeInvalidState       = shared.CodeInvalidState
	ErrCodeTransactionFailure = shared.CodeTransactionFailure
)

// Transport error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request binding validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Operation validation -> 400 Bad Request
	ErrCodeInvalidType:        http.StatusBadRequest,
	ErrCodeMissingDestination: http.StatusBadRequest,
	ErrCodeMissingSource:      http.StatusBadRequest,
	ErrCodeMissingLocations:   http.StatusBadRequest,
	ErrCodeInvalidLineItem:    http.StatusBadRequest,
	ErrCodeInvalidInput:       http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	// State machine -> 422 Unprocessable Entity
	ErrCodeInvalidState: http.StatusUnprocessableEntity,

	// Store failures
	ErrCodeTransactionFailure: http.StatusInternalServerError,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeInternal:        http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
