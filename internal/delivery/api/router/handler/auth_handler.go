package handler

import (
	"log/slog"

	"loginflow/internal/delivery/api/response"
	"loginflow/internal/domain/entity"
	domainerrors "loginflow/internal/domain/errors"
	"loginflow/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	msgVerifyLoginFieldsRequired   = "Email and password are required"
	msgPasswordResetFieldsRequired = "User ID, email, and new password are required"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	LoginUC         usecase.LoginUsecase
	PasswordResetUC usecase.PasswordResetUsecase
	Logger          *slog.Logger
}

// AuthHandler serves the verify-login and complete-password-reset functions
type AuthHandler struct {
	loginUC         usecase.LoginUsecase
	passwordResetUC usecase.PasswordResetUsecase
	logger          *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		loginUC:         params.LoginUC,
		passwordResetUC: params.PasswordResetUC,
		logger:          params.Logger,
	}
}

// VerifyLoginRequest is the body of verify-login
type VerifyLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// VerifyLoginResponse is the 200 body of verify-login.
// Session and User are set for a normal sign-in; UserID and Email when a reset is required.
type VerifyLoginResponse struct {
	Success       bool                `json:"success"`
	RequiresReset bool                `json:"requires_reset"`
	Session       *entity.Session     `json:"session,omitempty"`
	User          *entity.SessionUser `json:"user,omitempty"`
	UserID        string              `json:"user_id,omitempty"`
	Email         string              `json:"email,omitempty"`
}

// CompletePasswordResetRequest is the body of complete-password-reset
type CompletePasswordResetRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	Email       string `json:"email" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// VerifyLogin decides whether the caller signs in normally or must reset their password first
func (h *AuthHandler) VerifyLogin(c echo.Context) error {
	var req VerifyLoginRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(domainerrors.NewValidationError(msgVerifyLoginFieldsRequired))
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(domainerrors.NewValidationError(msgVerifyLoginFieldsRequired))
	}

	output, err := h.loginUC.VerifyLogin(c.Request().Context(), &usecase.VerifyLoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	if output.RequiresReset {
		return response.Success(c, VerifyLoginResponse{
			Success:       true,
			RequiresReset: true,
			UserID:        output.UserID,
			Email:         output.Email,
		})
	}

	return response.Success(c, VerifyLoginResponse{
		Success: true,
		Session: output.Session,
		User:    output.User,
	})
}

// CompletePasswordReset sets the new primary password and leaves forced-reset state
func (h *AuthHandler) CompletePasswordReset(c echo.Context) error {
	var req CompletePasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(domainerrors.NewValidationError(msgPasswordResetFieldsRequired))
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(domainerrors.NewValidationError(msgPasswordResetFieldsRequired))
	}

	err := h.passwordResetUC.CompletePasswordReset(c.Request().Context(), &usecase.CompletePasswordResetInput{
		UserID:      req.UserID,
		Email:       req.Email,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return err
	}

	return response.OK(c)
}
