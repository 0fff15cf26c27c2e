package validation

import (
	"strings"
)

// Field rules for registration and profile forms
var (
	// PasswordMinLength is the shortest accepted identity password
	PasswordMinLength = 6

	// PhoneMinLength is the shortest accepted phone number
	PhoneMinLength = 10

	// CGPA bounds, inclusive
	CGPAMin = 0.0
	CGPAMax = 10.0
)

// IsValidEmail only requires an "@"; deliverability is the identity
// provider's concern.
func IsValidEmail(email string) bool {
	return email != "" && strings.Contains(email, "@")
}

// ValidCGPA reports whether a CGPA is present and within bounds
func ValidCGPA(cgpa *float64) bool {
	return cgpa != nil && *cgpa >= CGPAMin && *cgpa <= CGPAMax
}

// StringValidation checks a single string value
type StringValidation struct {
	Value    string
	MinLen   int
	Required bool
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	return true
}
