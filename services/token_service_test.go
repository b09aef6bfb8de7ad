package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/geofront-io/geofront/cache"
	"github.com/geofront-io/geofront/domain"
)

type mockTokenStore struct {
	mock.Mock
}

func (m *mockTokenStore) SaveToken(ctx context.Context, token *domain.AccessToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockTokenStore) DeleteToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockTokenStore) FetchByToken(ctx context.Context, token string) (*domain.AccessToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessToken), args.Error(1)
}

func (m *mockTokenStore) ClearTokens(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// brokenCache fails every operation, to prove cache errors never
// surface to callers.
type brokenCache struct{}

func (brokenCache) Set(context.Context, *domain.AccessToken) error { return errors.New("cache down") }
func (brokenCache) Get(context.Context, string) (*domain.AccessToken, error) {
	return nil, errors.New("cache down")
}
func (brokenCache) Delete(context.Context, string) error { return errors.New("cache down") }
func (brokenCache) Clear(context.Context) error          { return errors.New("cache down") }

func TestIssueToken(t *testing.T) {
	ctx := context.Background()

	t.Run("generates an opaque token with the requested ttl", func(t *testing.T) {
		store := new(mockTokenStore)
		store.On("SaveToken", ctx, mock.AnythingOfType("*domain.AccessToken")).Return(nil)

		svc := NewTokenService(store, nil)
		before := time.Now().UTC()
		token, err := svc.IssueToken(ctx, 2*time.Hour, map[string]string{"key": "value"})
		require.NoError(t, err)

		assert.Len(t, token.Token, 32)
		assert.NotContains(t, token.Token, "-")
		assert.Equal(t, map[string]string{"key": "value"}, token.UserEnviron)
		assert.WithinDuration(t, before.Add(2*time.Hour), token.ExpiresAt, time.Minute)
		store.AssertExpectations(t)
	})

	t.Run("defaults to one hour when ttl is not positive", func(t *testing.T) {
		store := new(mockTokenStore)
		store.On("SaveToken", ctx, mock.Anything).Return(nil)

		svc := NewTokenService(store, nil)
		token, err := svc.IssueToken(ctx, 0, nil)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC().Add(DefaultTokenTTL), token.ExpiresAt, time.Minute)
	})

	t.Run("store failure fails the issue", func(t *testing.T) {
		store := new(mockTokenStore)
		store.On("SaveToken", ctx, mock.Anything).Return(errors.New("write failed"))

		svc := NewTokenService(store, nil)
		_, err := svc.IssueToken(ctx, time.Hour, nil)
		assert.Error(t, err)
	})

	t.Run("cache failure does not fail the issue", func(t *testing.T) {
		store := new(mockTokenStore)
		store.On("SaveToken", ctx, mock.Anything).Return(nil)

		svc := NewTokenService(store, brokenCache{})
		_, err := svc.IssueToken(ctx, time.Hour, nil)
		assert.NoError(t, err)
	})
}

func TestFetchByToken(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the store", func(t *testing.T) {
		memory := cache.NewMemoryTokenCache()
		defer memory.Stop()
		cached := &domain.AccessToken{Token: "deadbeef", ExpiresAt: time.Now().Add(time.Hour)}
		require.NoError(t, memory.Set(ctx, cached))

		store := new(mockTokenStore)
		svc := NewTokenService(store, memory)

		got, err := svc.FetchByToken(ctx, "deadbeef")
		require.NoError(t, err)
		assert.Equal(t, cached, got)
		store.AssertNotCalled(t, "FetchByToken", mock.Anything, mock.Anything)
	})

	t.Run("cache miss falls through and populates the cache", func(t *testing.T) {
		memory := cache.NewMemoryTokenCache()
		defer memory.Stop()
		stored := &domain.AccessToken{Token: "deadbeef", ExpiresAt: time.Now().Add(time.Hour)}

		store := new(mockTokenStore)
		store.On("FetchByToken", ctx, "deadbeef").Return(stored, nil).Once()

		svc := NewTokenService(store, memory)
		got, err := svc.FetchByToken(ctx, "deadbeef")
		require.NoError(t, err)
		assert.Equal(t, stored, got)

		// second read comes from the cache
		got, err = svc.FetchByToken(ctx, "deadbeef")
		require.NoError(t, err)
		assert.Equal(t, stored, got)
		store.AssertExpectations(t)
	})

	t.Run("cache failure degrades to a store read", func(t *testing.T) {
		stored := &domain.AccessToken{Token: "deadbeef", ExpiresAt: time.Now().Add(time.Hour)}
		store := new(mockTokenStore)
		store.On("FetchByToken", ctx, "deadbeef").Return(stored, nil)

		svc := NewTokenService(store, brokenCache{})
		got, err := svc.FetchByToken(ctx, "deadbeef")
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("unknown token propagates the store error", func(t *testing.T) {
		store := new(mockTokenStore)
		store.On("FetchByToken", ctx, "missing").Return(nil, domain.ErrTokenNotFound)

		svc := NewTokenService(store, nil)
		_, err := svc.FetchByToken(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()

	t.Run("revoke evicts the cached token", func(t *testing.T) {
		memory := cache.NewMemoryTokenCache()
		defer memory.Stop()
		token := &domain.AccessToken{Token: "deadbeef", ExpiresAt: time.Now().Add(time.Hour)}
		require.NoError(t, memory.Set(ctx, token))

		store := new(mockTokenStore)
		store.On("DeleteToken", ctx, "deadbeef").Return(nil)

		svc := NewTokenService(store, memory)
		require.NoError(t, svc.Revoke(ctx, "deadbeef"))

		_, err := memory.Get(ctx, "deadbeef")
		assert.ErrorIs(t, err, cache.ErrCacheMiss)
	})

	t.Run("store failure fails the revoke", func(t *testing.T) {
		store := new(mockTokenStore)
		store.On("DeleteToken", ctx, "deadbeef").Return(errors.New("delete failed"))

		svc := NewTokenService(store, nil)
		assert.Error(t, svc.Revoke(ctx, "deadbeef"))
	})

	t.Run("revoke all clears store and cache", func(t *testing.T) {
		memory := cache.NewMemoryTokenCache()
		defer memory.Stop()
		require.NoError(t, memory.Set(ctx, &domain.AccessToken{Token: "one", ExpiresAt: time.Now().Add(time.Hour)}))

		store := new(mockTokenStore)
		store.On("ClearTokens", ctx).Return(nil)

		svc := NewTokenService(store, memory)
		require.NoError(t, svc.RevokeAll(ctx))

		_, err := memory.Get(ctx, "one")
		assert.ErrorIs(t, err, cache.ErrCacheMiss)
	})
}
