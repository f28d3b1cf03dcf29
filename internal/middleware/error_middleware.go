package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unidb/internal/app/models/dto"
	"github.com/yigit/unidb/internal/pkg/apperrors"
)

// StatusFor maps an application error to its HTTP status and error code
func StatusFor(err error) (int, dto.ErrorCode) {
	switch {
	case apperrors.Is(err, apperrors.ErrModuleNotFound, apperrors.ErrRecordNotFound, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusUnprocessableEntity, dto.ErrorCodeValidationFailed
	case errors.Is(err, apperrors.ErrUnknownField):
		return http.StatusBadRequest, dto.ErrorCodeResourceInvalid
	case apperrors.Is(err, apperrors.ErrBadRequest, apperrors.ErrSessionRequired):
		return http.StatusBadRequest, dto.ErrorCodeBadRequest
	default:
		return http.StatusInternalServerError, dto.ErrorCodeInternalServer
	}
}

// HandleAPIError writes the JSON error envelope for err
func HandleAPIError(c *gin.Context, err error) {
	status, code := StatusFor(err)

	message := err.Error()
	severity := dto.ErrorSeverityWarning
	if status == http.StatusInternalServerError {
		message = "Internal server error"
		severity = dto.ErrorSeverityCritical
		_ = c.Error(err)
	}

	var custom *apperrors.CustomError
	isCustom := errors.As(err, &custom)
	if isCustom && custom.StatusMsg != "" {
		message = custom.StatusMsg
	}

	detail := dto.NewErrorDetail(code, message).WithSeverity(severity)
	if isCustom && custom.Details != nil {
		detail = detail.WithDetails(custom.Details)
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}
