package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placementportal/internal/app/models/dto"
	"github.com/yigit/placementportal/internal/pkg/apperrors"
	"github.com/yigit/placementportal/internal/pkg/logger"
)

// errorMapping ties a sentinel to its HTTP status and error code
type errorMapping struct {
	target error
	status int
	code   dto.ErrorCode
}

// errorMappings is checked in order; the first sentinel err wraps wins
var errorMappings = []errorMapping{
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeBadRequest},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeTokenRevoked},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
	{apperrors.ErrUnauthenticated, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
}

// ErrorStatus returns the HTTP status and error code for err. Errors outside
// the known sentinels are backend failures.
func ErrorStatus(err error) (int, dto.ErrorCode) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, dto.ErrorCodeInternalServer
}

// HandleAPIError renders err as the failure envelope. The message is the
// error's own text, so backend messages reach the caller unchanged.
func HandleAPIError(c *gin.Context, err error) {
	status, code := ErrorStatus(err)

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Str("method", c.Request.Method).Msg("Request failed")
	}

	detail := dto.NewErrorDetail(code, err.Error())
	if gin.Mode() == gin.DebugMode && status == http.StatusInternalServerError {
		detail = detail.WithDebugInfo("%+v", err)
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}
