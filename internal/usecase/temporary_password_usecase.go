package usecase

import (
	"context"
	"time"
)

// IssueTemporaryPasswordInput selects the account and the credential lifetime.
// A zero TTL uses the configured default.
type IssueTemporaryPasswordInput struct {
	Email string
	TTL   time.Duration
}

// IssueTemporaryPasswordOutput carries the plaintext secret. It is never stored.
type IssueTemporaryPasswordOutput struct {
	UserID            string
	Email             string
	TemporaryPassword string
	ExpiresAt         time.Time
}

// TemporaryPasswordUsecase provisions temporary passwords for administrators.
type TemporaryPasswordUsecase interface {
	// IssueTemporaryPassword forces an existing account through a reset.
	IssueTemporaryPassword(ctx context.Context, input *IssueTemporaryPasswordInput) (*IssueTemporaryPasswordOutput, error)

	// ProvisionAccount creates the account at the identity provider and its profile, already in forced-reset state.
	// The primary password is random and never revealed.
	ProvisionAccount(ctx context.Context, input *IssueTemporaryPasswordInput) (*IssueTemporaryPasswordOutput, error)
}
