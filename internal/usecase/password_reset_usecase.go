package usecase

import (
	"context"
)

// CompletePasswordResetInput is the confirmed identity plus the new password.
type CompletePasswordResetInput struct {
	UserID      string
	Email       string
	NewPassword string
}

// PasswordResetUsecase finalizes a forced password reset.
type PasswordResetUsecase interface {
	CompletePasswordReset(ctx context.Context, input *CompletePasswordResetInput) error
}
