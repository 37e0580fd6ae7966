// Package middleware holds the echo middleware specific to the function API.
package middleware

import (
	"log/slog"
	"net/http"

	"loginflow/internal/delivery/api/response"
	deliverycontext "loginflow/internal/delivery/context"
	domainerrors "loginflow/internal/domain/errors"
	"loginflow/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler.
// Clients only ever see the AppError message; server-side causes stay in the log.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		info := domainerrors.InfoOf(appErr)
		attrs := []any{
			slog.String("code", info.Code),
			slog.String("path", c.Request().URL.Path),
			slog.Any("error", err),
		}
		if info.Details != "" {
			attrs = append(attrs, slog.String("details", info.Details))
		}
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			attrs = append(attrs, slog.String("origin", errors.Origin(err)))
			logger.Error("Request failed", attrs...)
		} else {
			logger.Debug("Request rejected", attrs...)
		}

		_ = response.AppError(c, appErr)

		return
	}

	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		if httpErr.Code >= http.StatusInternalServerError {
			logger.Error("Request failed", slog.Any("error", err), slog.String("path", c.Request().URL.Path))
			_ = response.InternalServerError(c)

			return
		}

		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			message = msg
		}
		_ = response.Error(c, httpErr.Code, message)

		return
	}

	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("origin", errors.Origin(err)),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.InternalServerError(c)
}
