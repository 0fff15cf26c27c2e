package dto

import "time"

// StructuredResponse is the single envelope every endpoint answers with.
// Exactly one of Data or Error is meaningful, selected by Success.
type StructuredResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message" example:"Operation completed successfully"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2026-04-23T12:01:05.123Z"`
}

// NewStructuredResponse creates a standard structured API response
func NewStructuredResponse(data interface{}, message string) StructuredResponse {
	return StructuredResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorResponse creates the failure form of the envelope
func NewErrorResponse(detail *ErrorDetail) StructuredResponse {
	message := ""
	if detail != nil {
		message = detail.Message
	}
	return StructuredResponse{
		Success:   false,
		Message:   message,
		Error:     detail,
		Timestamp: time.Now(),
	}
}
