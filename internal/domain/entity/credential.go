package entity

import (
	"time"
)

// Credential is a password record owned by the self-hosted identity provider.
type Credential struct {
	UserID       string    // Same id as the profile it backs.
	Email        string    // Login identifier.
	PasswordHash string    // bcrypt hash of the primary password.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
