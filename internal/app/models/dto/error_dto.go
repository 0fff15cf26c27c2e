package dto

import (
	"fmt"
)

// ErrorCode is the stable machine-readable half of a failure
type ErrorCode string

const (
	// Session and sign-in
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_006"
	ErrorCodeTokenRevoked       ErrorCode = "AUTH_007"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"
	ErrorCodeForbidden          ErrorCode = "AUTH_009"

	// Rows
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeConflict              ErrorCode = "RES_004"

	// Input
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeBadRequest       ErrorCode = "VAL_002"

	// Anything the backend reported that has no mapping
	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

// ErrorDetail is the error half of the response envelope. Message carries
// the user-facing text verbatim, joined validation messages included.
type ErrorDetail struct {
	Code      ErrorCode   `json:"code" example:"VAL_001"`
	Message   string      `json:"message" example:"USN is required, Valid email is required"`
	Field     string      `json:"field,omitempty" example:"email"`
	Details   interface{} `json:"details,omitempty"`
	DebugInfo string      `json:"debugInfo,omitempty"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message}
}

// WithField names the single offending field
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithDetails attaches per-field failures or the raw bind error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// WithDebugInfo attaches the underlying error text; debug mode only
func (e *ErrorDetail) WithDebugInfo(format string, args ...interface{}) *ErrorDetail {
	e.DebugInfo = fmt.Sprintf(format, args...)
	return e
}

// FieldError is one failed binding rule
type FieldError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"email must be at most 255"`
}
