package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain errors keep their own codes; the
// mapping below decides the HTTP status for both.
const (
	// ErrCodeAuthRequired is used when authentication is missing or invalid
	ErrCodeAuthRequired = "AUTH_REQUIRED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeConflict is used for resource conflicts
	ErrCodeConflict = "CONFLICT"
	// ErrCodeValidationFailed is used when the request body fails validation
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUpstreamFetch is used when a price list URL cannot be fetched
	ErrCodeUpstreamFetch = "UPSTREAM_FETCH_FAILED"
	// ErrCodeRateLimited is used when the rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMITED"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL"
)

// errorCodeHTTPStatus maps known error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeAuthRequired:  http.StatusUnauthorized,
	ErrCodeForbidden:     http.StatusForbidden,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeUpstreamFetch: http.StatusBadGateway,
	ErrCodeRateLimited:   http.StatusTooManyRequests,
	ErrCodeInternal:      http.StatusInternalServerError,
	"INTERNAL_ERROR":     http.StatusInternalServerError,

	// Authentication
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,
	"SHOP_NOT_OWNED":      http.StatusForbidden,

	// Confirmation and reset tokens arrive in the request body, so a bad
	// one is a validation problem rather than a failed login
	"INVALID_TOKEN": http.StatusUnprocessableEntity,
	"TOKEN_EXPIRED": http.StatusUnprocessableEntity,

	// Conflicts
	"ALREADY_EXISTS":       http.StatusConflict,
	"EMAIL_EXISTS":         http.StatusConflict,
	"CONTACT_LIMIT":        http.StatusConflict,
	"DUPLICATE_LINE":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rules
	ErrCodeValidationFailed: http.StatusUnprocessableEntity,
	"INVALID_INPUT":         http.StatusUnprocessableEntity,
	"INVALID_STATE":         http.StatusUnprocessableEntity,
	"EMPTY_BASKET":          http.StatusUnprocessableEntity,
	"NOT_A_BASKET":          http.StatusUnprocessableEntity,
	"INVALID_CONTACT":       http.StatusUnprocessableEntity,

	// Price list document problems
	"UNKNOWN_CATEGORY": http.StatusUnprocessableEntity,
	"DUPLICATE_GOODS":  http.StatusUnprocessableEntity,
	"FETCH_FAILED":     http.StatusBadGateway,

	"SHOP_NOT_FOUND": http.StatusNotFound,
}

// GetHTTPStatus returns the HTTP status code for an error code. Codes
// without an explicit mapping fall back on their naming convention, and
// anything else is treated as an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasPrefix(code, "INVALID_"), strings.HasPrefix(code, "EMPTY_"):
		return http.StatusUnprocessableEntity
	case strings.HasPrefix(code, "DUPLICATE_"), strings.HasSuffix(code, "_EXISTS"):
		return http.StatusConflict
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
