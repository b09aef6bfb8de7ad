// Package services holds the application services composed from the
// stores: token issuance and revocation with read-through caching.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/geofront-io/geofront/cache"
	"github.com/geofront-io/geofront/domain"
)

// DefaultTokenTTL applies when the caller does not specify a validity.
const DefaultTokenTTL = time.Hour

// TokenService issues and revokes access tokens. Lookups go through an
// optional cache first; cache failures degrade to store reads, never to
// request failures.
type TokenService struct {
	store      domain.TokenStore
	cache      cache.TokenCache
	defaultTTL time.Duration
}

// NewTokenService creates a token service. The cache may be nil.
func NewTokenService(store domain.TokenStore, tokenCache cache.TokenCache) *TokenService {
	return &TokenService{store: store, cache: tokenCache, defaultTTL: DefaultTokenTTL}
}

// WithDefaultTTL overrides the validity applied to tokens issued
// without an explicit ttl.
func (s *TokenService) WithDefaultTTL(ttl time.Duration) *TokenService {
	if ttl > 0 {
		s.defaultTTL = ttl
	}
	return s
}

// IssueToken generates an opaque token valid for ttl, with the given
// environment bag attached.
func (s *TokenService) IssueToken(ctx context.Context, ttl time.Duration, environ map[string]string) (*domain.AccessToken, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	token := &domain.AccessToken{
		Token:       strings.ReplaceAll(uuid.NewString(), "-", ""),
		ExpiresAt:   time.Now().UTC().Add(ttl),
		UserEnviron: environ,
	}
	if err := s.store.SaveToken(ctx, token); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, token); err != nil {
			log.Warn().Err(err).Msg("failed to cache issued token")
		}
	}
	return token, nil
}

// FetchByToken resolves a token string, preferring the cache.
func (s *TokenService) FetchByToken(ctx context.Context, token string) (*domain.AccessToken, error) {
	if s.cache != nil {
		access, err := s.cache.Get(ctx, token)
		if err == nil {
			return access, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn().Err(err).Msg("token cache lookup failed, falling back to store")
		}
	}
	access, err := s.store.FetchByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, access); err != nil {
			log.Warn().Err(err).Msg("failed to cache fetched token")
		}
	}
	return access, nil
}

// Revoke deletes a token from the store and evicts it from the cache.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	if err := s.store.DeleteToken(ctx, token); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, token); err != nil {
			log.Warn().Err(err).Msg("failed to evict revoked token from cache")
		}
	}
	return nil
}

// RevokeAll deletes every issued token.
func (s *TokenService) RevokeAll(ctx context.Context) error {
	if err := s.store.ClearTokens(ctx); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Clear(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to clear token cache")
		}
	}
	return nil
}
