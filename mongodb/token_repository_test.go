package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geofront-io/geofront/domain"
	"github.com/geofront-io/geofront/mongodb/testutil"
)

func TestTokenRepositoryIntegration(t *testing.T) {
	db, cleanup := testutil.SetupTestMongoDB(t, "geofront_tokens")
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, EnsureIndexes(ctx, db))
	repo := NewTokenRepository(db)

	token := &domain.AccessToken{
		Token:       "8b6e9f2d8a874c5f9d0f2c9a4e1b7a33",
		ExpiresAt:   time.Now().UTC().Add(time.Hour).Truncate(time.Millisecond),
		UserEnviron: map[string]string{"WPS_CFG": "/etc/wps.cfg"},
	}

	t.Run("save and fetch", func(t *testing.T) {
		require.NoError(t, repo.SaveToken(ctx, token))

		fetched, err := repo.FetchByToken(ctx, token.Token)
		require.NoError(t, err)
		assert.Equal(t, token.Token, fetched.Token)
		assert.Equal(t, token.UserEnviron, fetched.UserEnviron)
		assert.WithinDuration(t, token.ExpiresAt, fetched.ExpiresAt, time.Second)
	})

	t.Run("fetch miss", func(t *testing.T) {
		_, err := repo.FetchByToken(ctx, "never-issued")
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteToken(ctx, token.Token))
		_, err := repo.FetchByToken(ctx, token.Token)
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, repo.SaveToken(ctx, &domain.AccessToken{Token: "a", ExpiresAt: time.Now().Add(time.Hour)}))
		require.NoError(t, repo.SaveToken(ctx, &domain.AccessToken{Token: "b", ExpiresAt: time.Now().Add(time.Hour)}))
		require.NoError(t, repo.ClearTokens(ctx))
		_, err := repo.FetchByToken(ctx, "a")
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})
}
