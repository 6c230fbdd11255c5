package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "vincowealth/internal/errors"
	"vincowealth/internal/logger"
)

// ErrorBody is the JSON error envelope returned by every command.
type ErrorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Entity     string `json:"entity,omitempty"`
	Constraint string `json:"constraint,omitempty"`
	Version    int64  `json:"version,omitempty"`
}

// ErrorResponse wraps ErrorBody under "error".
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewErrorResponse builds the envelope for an AppError.
func NewErrorResponse(appErr *apperrors.AppError) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{
		Code:       appErr.Code,
		Message:    appErr.Message,
		Entity:     appErr.Entity,
		Constraint: appErr.Constraint,
		Version:    appErr.Version,
	}}
}

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into consistent JSON error responses. AppErrors are returned with
// their code and message; unexpected errors are logged and return a generic
// internal error to avoid leaking details.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"message", appErr.Message,
					"entity", appErr.Entity,
					"constraint", appErr.Constraint,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
					"request_id", c.GetString(requestIDKey),
				)
			}
			c.JSON(appErr.StatusCode, NewErrorResponse(appErr))
			return
		}

		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", c.GetString(requestIDKey),
		)
		c.JSON(apperrors.ErrInternalServer.StatusCode, NewErrorResponse(apperrors.ErrInternalServer))
	}
}

// abortWithError stops the chain and writes appErr immediately.
func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, NewErrorResponse(appErr))
}
