package entity

import (
	"time"
)

// AccountEventType names an account lifecycle event
type AccountEventType string

const (
	EventTemporaryPasswordIssued  AccountEventType = "temporary_password.issued"
	EventTemporaryPasswordExpired AccountEventType = "temporary_password.expired"
	EventPasswordResetCompleted   AccountEventType = "password_reset.completed"
)

// ParseAccountEventType accepts only the known event types.
func ParseAccountEventType(s string) (AccountEventType, bool) {
	switch t := AccountEventType(s); t {
	case EventTemporaryPasswordIssued, EventTemporaryPasswordExpired, EventPasswordResetCompleted:
		return t, true
	default:
		return "", false
	}
}

// AccountEvent is published after a reset-related state change.
type AccountEvent struct {
	ID         string           `json:"id"`
	Type       AccountEventType `json:"type"`
	UserID     string           `json:"user_id"`
	Email      string           `json:"email"`
	ClientIP   string           `json:"client_ip,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}
