package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User-facing messages shared by services and handlers
const (
	MsgUserAlreadyExists        = "User already exists"
	MsgEmployerIDAlreadyExists  = "Employer ID already exists"
	MsgStudentUSNAlreadyExists  = "USN already exists"
	MsgAlreadyApplied           = "You have already applied for this job"
	MsgInvalidStudentLogin      = "Invalid credentials for student login"
	MsgInvalidEmployerLogin     = "Invalid credentials for employer login"
	MsgNoJobsForEmployer        = "No jobs found for this employer"
	MsgAllFieldsRequired        = "All fields are required"
	MsgAllJobFieldsRequired     = "All fields are required for updating the job"
	MsgJobIDRequired            = "Job ID is required for deleting the job"
	MsgInterviewIDRequired      = "Interview Id  is required for deleting the Interview"
	MsgAppIDAndStatusRequired   = "Both appId and status are required"
	MsgPDFRequired              = "Please select a PDF file"
	MsgInvalidApplicationStatus = "Status must be one of Pending, Accepted, Rejected"
	MsgStatusTransitionRefused  = "Only pending applications can be accepted or rejected"
	MsgNotAuthenticated         = "Authentication required"
	MsgRoleNotPermitted         = "You do not have access to this resource"
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError wraps ErrValidationFailed with the message shown to the caller
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewUnauthorizedError wraps ErrInvalidCredentials with a message
func NewUnauthorizedError(message string) error {
	return &CustomError{
		Err:     ErrInvalidCredentials,
		Message: message,
	}
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
