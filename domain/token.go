package domain

import "time"

// AccessToken is an opaque bearer token granting access to protected OWS
// services. Tokens are immutable once issued; revocation is deletion.
type AccessToken struct {
	Token       string            `bson:"token" json:"token"`
	ExpiresAt   time.Time         `bson:"expires_at" json:"expires_at"`
	UserEnviron map[string]string `bson:"user_environ,omitempty" json:"user_environ,omitempty"`
}

// IsExpired reports whether the token is expired at the given instant.
// A timestamp exactly equal to ExpiresAt counts as expired.
func (t *AccessToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
