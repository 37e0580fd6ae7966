package entity

import (
	"time"
)

// AuthSession is what the primary identity provider returns for a successful password sign-in.
type AuthSession struct {
	Session *Session     `json:"session"`
	User    *SessionUser `json:"user"`
}

// Session carries the tokens the client keeps after signing in.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"` // seconds
	ExpiresAt    time.Time `json:"expires_at"`
}

// SessionUser is the signed-in account as seen by the identity provider.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
