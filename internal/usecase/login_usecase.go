// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"loginflow/internal/domain/entity"
)

// --- Input DTOs ---

// VerifyLoginInput is the email/password pair submitted to verify-login.
type VerifyLoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// VerifyLoginOutput is the routing decision of verify-login.
// When RequiresReset is true only UserID and Email are set and no session was issued.
type VerifyLoginOutput struct {
	RequiresReset bool
	Session       *entity.Session
	User          *entity.SessionUser
	UserID        string
	Email         string
}

// LoginUsecase decides whether a sign-in proceeds normally or must go through a password reset.
type LoginUsecase interface {
	VerifyLogin(ctx context.Context, input *VerifyLoginInput) (*VerifyLoginOutput, error)
}
