// Package response writes the JSON bodies of the function endpoints.
package response

import (
	"net/http"

	domainerrors "loginflow/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// SuccessResponse is the body of a call that needs nothing beyond an acknowledgement
type SuccessResponse struct {
	Success bool `json:"success"`
}

// OK returns {"success":true}
func OK(c echo.Context) error {
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Success returns a 200 with the given body
func Success(c echo.Context, body any) error {
	return c.JSON(http.StatusOK, body)
}

// Error returns {"error": message} with the given status
func Error(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, domainerrors.ErrorResponse{Error: message})
}

// AppError renders an AppError with its own status and client message
func AppError(c echo.Context, appErr domainerrors.AppError) error {
	return Error(c, appErr.HTTPCode(), appErr.Message())
}

// InternalServerError returns the generic 500 body
func InternalServerError(c echo.Context) error {
	return AppError(c, domainerrors.ErrInternalError)
}
