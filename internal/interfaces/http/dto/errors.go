package dto

import "net/http"

// Error codes returned in the error envelope. Format: ERR_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidLineItem is used when a line item has a bad weight, rate, charge or quantity
	ErrCodeInvalidLineItem = "ERR_INVALID_LINE_ITEM"
	// ErrCodeInvalidDiscount is used when the discount exceeds the subtotal
	ErrCodeInvalidDiscount = "ERR_INVALID_DISCOUNT"
	// ErrCodeInvalidExchange is used when the old-material input of an exchange bill is invalid
	ErrCodeInvalidExchange = "ERR_INVALID_EXCHANGE_INPUT"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	// ErrCodeReferentialConflict is used when a delete would orphan dependent records
	ErrCodeReferentialConflict = "ERR_REFERENTIAL_CONFLICT"
	// ErrCodeRequestInProgress is used when a request with the same idempotency key is still running
	ErrCodeRequestInProgress = "ERR_REQUEST_IN_PROGRESS"
)

// Business rule error codes
const (
	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
)

// Storage error codes
const (
	// ErrCodePersistenceFailure is used when the store failed; the client may retry
	ErrCodePersistenceFailure = "ERR_PERSISTENCE_FAILURE"
	// ErrCodeTransactionTimeout is used when a transaction hit its deadline or a lock wait
	ErrCodeTransactionTimeout = "ERR_TRANSACTION_TIMEOUT"
)

// Input error codes
const (
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Access error codes
const (
	ErrCodeForbidden   = "ERR_FORBIDDEN"
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeInvalidLineItem: http.StatusBadRequest,
	ErrCodeInvalidDiscount: http.StatusBadRequest,
	ErrCodeInvalidExchange: http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeReferentialConflict: http.StatusConflict,
	ErrCodeRequestInProgress:   http.StatusConflict,

	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,

	ErrCodePersistenceFailure: http.StatusServiceUnavailable,
	ErrCodeTransactionTimeout: http.StatusGatewayTimeout,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeForbidden:   http.StatusForbidden,
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"VALIDATION_ERROR":       ErrCodeValidation,
	"INVALID_LINE_ITEM":      ErrCodeInvalidLineItem,
	"INVALID_DISCOUNT":       ErrCodeInvalidDiscount,
	"INVALID_EXCHANGE_INPUT": ErrCodeInvalidExchange,
	"INSUFFICIENT_STOCK":     ErrCodeInsufficientStock,
	"PERSISTENCE_FAILURE":    ErrCodePersistenceFailure,
	"TRANSACTION_TIMEOUT":    ErrCodeTransactionTimeout,
	"REFERENTIAL_CONFLICT":   ErrCodeReferentialConflict,
	"NOT_FOUND":              ErrCodeNotFound,
	"CONCURRENCY_CONFLICT":   ErrCodeConcurrencyConflict,
	"INVALID_STATE":          ErrCodeInvalidState,
	"REQUEST_IN_PROGRESS":    ErrCodeRequestInProgress,
	"INTERNAL_ERROR":         ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to its API code.
// Codes already in API form, and unknown codes, are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
