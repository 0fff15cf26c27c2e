package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/placementportal/internal/app/models/dto"
)

// BindJSON binds the request body into obj and answers 400 when the body is
// malformed or a binding rule fails. It reports whether binding succeeded.
func BindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]dto.FieldError, 0, len(validationErrors))
		messages := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			message := formatValidationError(fe)
			fields = append(fields, dto.FieldError{Field: fe.Field(), Message: message})
			messages = append(messages, message)
		}

		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, strings.Join(messages, ", ")).WithDetails(fields)
		if len(fields) == 1 {
			detail = detail.WithField(fields[0].Field)
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return false
	}

	detail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid request format").WithDetails(err.Error())
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
	return false
}

// ParseIDParam reads a positive integer path parameter. Zero and malformed
// values come back as 0 so services report their own required-field error.
func ParseIDParam(c *gin.Context, name string) int64 {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "gte":
		return e.Field() + " must be at least " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
