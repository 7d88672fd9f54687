package dto

import "net/http"

// API error codes, ERR_<CATEGORY>[_<DETAIL>]
const (
	ErrCodeInternal = "ERR_INTERNAL"

	// ErrCodeValidation reports fields that fail binding rules
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationFormat reports fields that cannot be parsed into their type
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeInvalidInput reports well-formed values that break a domain rule
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"

	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConstraintViolation reports a write that breaks a uniqueness or reference rule
	ErrCodeConstraintViolation = "ERR_CONSTRAINT_VIOLATION"

	ErrCodePayloadTooLarge = "ERR_PAYLOAD_TOO_LARGE"
)

var statusByCode = map[string]int{
	ErrCodeInternal:            http.StatusInternalServerError,
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodeValidationFormat:    http.StatusBadRequest,
	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeConstraintViolation: http.StatusConflict,
	ErrCodePayloadTooLarge:     http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the status for an API error code. Unknown codes are 500.
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// keyed by shared.DomainError codes
var apiCodeByDomainCode = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"CONSTRAINT_VIOLATION": ErrCodeConstraintViolation,
	"COERCION_ERROR":       ErrCodeValidationFormat,
	"INVALID_INPUT":        ErrCodeInvalidInput,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format or unknown are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := apiCodeByDomainCode[code]; ok {
		return apiCode
	}
	return code
}
