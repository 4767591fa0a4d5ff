package dto

import (
	"net/http"

	"github.com/depot/backend/internal/domain/shared"
)

// HTTP-layer error codes for failures that never reach the domain
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = shared.CodeNotFound
	ErrCodeInternal   = shared.CodeInternal
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:           http.StatusBadRequest,
	ErrCodeBadRequest:               http.StatusBadRequest,
	shared.CodeNotFound:             http.StatusNotFound,
	shared.CodeDuplicatePrice:       http.StatusConflict,
	shared.CodeConcurrencyConflict:  http.StatusConflict,
	shared.CodeInsufficientStock:    http.StatusUnprocessableEntity,
	shared.CodeConsistencyViolation: http.StatusConflict,
	shared.CodeInternal:             http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
