// Package redis implements the token cache on Redis, for deployments
// running more than one gateway instance.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/geofront-io/geofront/cache"
	"github.com/geofront-io/geofront/domain"
)

// TokenCache implements cache.TokenCache using Redis.
type TokenCache struct {
	client *redis.Client
	prefix string
}

// NewTokenCache creates a Redis-backed token cache. The prefix
// namespaces the gateway's keys on a shared Redis.
func NewTokenCache(client *redis.Client, prefix string) *TokenCache {
	if prefix == "" {
		prefix = "geofront"
	}
	return &TokenCache{client: client, prefix: prefix}
}

func (r *TokenCache) redisKey(token string) string {
	return fmt.Sprintf("%s:token:%s", r.prefix, token)
}

func (r *TokenCache) Set(ctx context.Context, token *domain.AccessToken) error {
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := r.client.Set(ctx, r.redisKey(token.Token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache token in redis: %w", err)
	}
	return nil
}

func (r *TokenCache) Get(ctx context.Context, token string) (*domain.AccessToken, error) {
	payload, err := r.client.Get(ctx, r.redisKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cache.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var access domain.AccessToken
	if err := json.Unmarshal(payload, &access); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached token: %w", err)
	}
	return &access, nil
}

func (r *TokenCache) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.redisKey(token)).Err()
}

func (r *TokenCache) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+":token:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

var _ cache.TokenCache = (*TokenCache)(nil)
