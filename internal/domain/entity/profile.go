// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// Profile is the account record shared by the login and password-reset flows.
// The three reset fields form one group: they are set together by issuance and cleared together.
type Profile struct {
	ID                    string     // Identity-provider user id, immutable.
	Email                 string     // Stored as provided; looked up case-insensitively.
	RequiresPasswordReset bool       // True while the account must sign in with a temporary password.
	TemporaryPasswordHash *string    // Hash of the issued temporary password, nil unless a reset is pending.
	TempPasswordExpiresAt *time.Time // After this instant the temporary password is void.
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// PendingReset reports whether the profile is in forced-reset state.
func (p *Profile) PendingReset() bool {
	return p != nil && p.RequiresPasswordReset && p.TemporaryPasswordHash != nil && *p.TemporaryPasswordHash != ""
}

// TemporaryPasswordExpired reports whether the temporary password expired strictly before now.
// A profile without an expiry never expires.
func (p *Profile) TemporaryPasswordExpired(now time.Time) bool {
	return p.TempPasswordExpiresAt != nil && p.TempPasswordExpiresAt.Before(now)
}
