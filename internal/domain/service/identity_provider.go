package service

import (
	"context"
	"errors"

	"loginflow/internal/domain/entity"
)

var (
	// ErrIdentityInvalidCredentials is returned when the provider rejects an email/password pair.
	ErrIdentityInvalidCredentials = errors.New("identity provider rejected credentials")

	// ErrIdentityUserExists is returned by CreateUser when the email is already registered.
	ErrIdentityUserExists = errors.New("identity provider user already exists")
)

// IdentityProvider is the primary authentication backend.
type IdentityProvider interface {
	// SignInWithPassword performs the standard password sign-in.
	SignInWithPassword(ctx context.Context, email, password string) (*entity.AuthSession, error)

	// UpdatePassword replaces the primary password of userID.
	UpdatePassword(ctx context.Context, userID, newPassword string) error

	// CreateUser registers an account under the caller-chosen userID.
	// It returns ErrIdentityUserExists when the email or id is taken.
	CreateUser(ctx context.Context, userID, email, password string) error
}
