package repository

import (
	"context"
	"errors"

	"loginflow/internal/domain/entity"
)

var (
	// ErrCredentialNotFound is returned when no local credential exists for the lookup.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrCredentialAlreadyExists is returned when a credential for the email or user id exists.
	ErrCredentialAlreadyExists = errors.New("credential already exists")
)

// CredentialRepository stores primary passwords for the self-hosted identity provider.
type CredentialRepository interface {
	// FindByEmail retrieves a credential by login email, compared case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.Credential, error)

	// Create persists a new credential.
	Create(ctx context.Context, credential *entity.Credential) error

	// UpdatePasswordHash replaces the stored hash for userID.
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error
}
