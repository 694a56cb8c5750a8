package domain

import "time"

// User is the signed-in administrator as described by the bearer token.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Session is the authentication state persisted under the auth key.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// IsZero reports whether no one is signed in.
func (s Session) IsZero() bool {
	return s.Token == ""
}

// Expired reports whether the credential is past its expiry at now. Sessions
// without an expiry never expire.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
