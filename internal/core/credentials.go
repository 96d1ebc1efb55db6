package core

import "time"

// Credentials identify a logged-in user and carry the API access token.
type Credentials struct {
	Username       string    `json:"username"`
	Token          string    `json:"token"`
	TokenExpiresAt time.Time `json:"token_expires_at"`
}

// IsExpired returns true if the token has expired or will expire within a
// minute. A zero expiry never expires.
func (c Credentials) IsExpired() bool {
	if c.TokenExpiresAt.IsZero() {
		return false
	}
	return time.Now().Add(60 * time.Second).After(c.TokenExpiresAt)
}
