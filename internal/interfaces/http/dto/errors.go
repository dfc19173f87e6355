package dto

import "net/http"

// API error codes. Handlers resolve domain error codes to one of these
// before writing the response.
const (
	ErrCodeValidation    = "ERR_VALIDATION"
	ErrCodeBadRequest    = "ERR_BAD_REQUEST"
	ErrCodeUnauthorized  = "ERR_UNAUTHORIZED"
	ErrCodeForbidden     = "ERR_FORBIDDEN"
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeConflict      = "ERR_CONFLICT"
	ErrCodeLocked        = "ERR_LOCKED"
	ErrCodeUnprocessable = "ERR_UNPROCESSABLE"
	ErrCodeUpstream      = "ERR_UPSTREAM"
	ErrCodeInternal      = "ERR_INTERNAL"
	ErrCodeTooManyReq    = "ERR_TOO_MANY_REQUESTS"
)

// ErrorCodeHTTPStatus maps API error codes to HTTP status codes.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeForbidden:     http.StatusForbidden,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeLocked:        http.StatusLocked,
	ErrCodeUnprocessable: http.StatusUnprocessableEntity,
	ErrCodeUpstream:      http.StatusBadGateway,
	ErrCodeInternal:      http.StatusInternalServerError,
	ErrCodeTooManyReq:    http.StatusTooManyRequests,
}

// domainErrorCodeMapping translates codes raised by the domain and
// application layers into API error codes. Unknown codes fall back to
// ERR_INTERNAL.
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeConflict,
	"INVALID_INPUT":        ErrCodeBadRequest,
	"CONCURRENCY_CONFLICT": ErrCodeConflict,
	"INVALID_STATE":        ErrCodeUnprocessable,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"INVALID_PERIOD":       ErrCodeBadRequest,
	"MISSING_BOOK":         ErrCodeUnprocessable,
	"INCOMPLETE_OWNERSHIP": ErrCodeUnprocessable,
	"SOURCE_FETCH_FAILED":  ErrCodeUpstream,
	"INVALID_CREDENTIALS":  ErrCodeUnauthorized,
	"ACCOUNT_LOCKED":       ErrCodeLocked,
	"ACCOUNT_DEACTIVATED":  ErrCodeForbidden,
	"PASSWORD_HASH_ERROR":  ErrCodeInternal,
	"TOKEN_EXPIRED":        ErrCodeUnauthorized,
	"INVALID_TOKEN":        ErrCodeUnauthorized,
}

// NormalizeErrorCode resolves a domain error code to an API error code.
func NormalizeErrorCode(code string) string {
	if mapped, ok := domainErrorCodeMapping[code]; ok {
		return mapped
	}
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	return ErrCodeInternal
}

// GetHTTPStatus returns the HTTP status for an API error code.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
