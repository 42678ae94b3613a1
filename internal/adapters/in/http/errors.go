package http

import (
	"errors"
	"net/http"

	"pickup/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// statusFor maps core errors to HTTP status codes. Access denied is 403 on
// reads and 400 on mutations.
func statusFor(method string, err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrVersionIsInvalid), errs.IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, errs.ErrAccessDenied):
		if method == http.MethodGet {
			return http.StatusForbidden
		}
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorHandler renders errors as {"message": ...}. Unknown errors are
// logged and answered with a generic 500.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	logger = logger.With(zap.String("component", "http"))

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		} else if status = statusFor(c.Request().Method, err); status != http.StatusInternalServerError {
			message = err.Error()
		}

		if status >= http.StatusInternalServerError {
			logger.Error("Request failed",
				zap.Error(err),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, ErrorResponse{Message: message})
		}
		if writeErr != nil {
			logger.Warn("Failed to write error response", zap.Error(writeErr))
		}
	}
}
