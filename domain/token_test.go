package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessTokenIsExpired(t *testing.T) {
	expiry := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	token := &AccessToken{Token: "abc", ExpiresAt: expiry}

	t.Run("before expiry", func(t *testing.T) {
		assert.False(t, token.IsExpired(expiry.Add(-time.Second)))
	})

	t.Run("exactly at expiry counts as expired", func(t *testing.T) {
		assert.True(t, token.IsExpired(expiry))
	})

	t.Run("after expiry", func(t *testing.T) {
		assert.True(t, token.IsExpired(expiry.Add(time.Second)))
	})
}
