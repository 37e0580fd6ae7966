// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"loginflow/internal/domain/entity"
)

// ErrProfileNotFound is returned when no profile matches the lookup.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines the operations on account profiles.
type ProfileRepository interface {
	// FindByEmail retrieves a profile by email, compared case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.Profile, error)

	// FindByID retrieves a profile by its identity-provider id.
	FindByID(ctx context.Context, id string) (*entity.Profile, error)

	// Create persists a new profile with no pending reset.
	Create(ctx context.Context, profile *entity.Profile) error

	// ClearPendingReset clears the reset flag, hash and expiry in one statement.
	// Clearing a profile with nothing pending, or no row at all, is not an error.
	ClearPendingReset(ctx context.Context, id string) error

	// ClearPendingResetIfMatch clears the reset group only while the stored hash still equals expectedHash.
	// It reports whether a row was cleared.
	ClearPendingResetIfMatch(ctx context.Context, id, expectedHash string) (bool, error)

	// SetPendingReset puts the profile into forced-reset state.
	SetPendingReset(ctx context.Context, id, hash string, expiresAt time.Time) error
}
