package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/geofront-io/geofront/domain"
)

// MemoryTokenCache implements TokenCache with ttlcache. Entries expire
// together with the token they cache.
type MemoryTokenCache struct {
	cache *ttlcache.Cache[string, *domain.AccessToken]
}

// NewMemoryTokenCache creates an in-memory token cache with automatic
// cleanup of expired entries.
func NewMemoryTokenCache() *MemoryTokenCache {
	cache := ttlcache.New(
		ttlcache.WithDisableTouchOnHit[string, *domain.AccessToken](),
	)
	go cache.Start()
	return &MemoryTokenCache{cache: cache}
}

func (c *MemoryTokenCache) Set(_ context.Context, token *domain.AccessToken) error {
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	c.cache.Set(token.Token, token, ttl)
	return nil
}

func (c *MemoryTokenCache) Get(_ context.Context, token string) (*domain.AccessToken, error) {
	item := c.cache.Get(token)
	if item == nil {
		return nil, ErrCacheMiss
	}
	return item.Value(), nil
}

func (c *MemoryTokenCache) Delete(_ context.Context, token string) error {
	c.cache.Delete(token)
	return nil
}

func (c *MemoryTokenCache) Clear(_ context.Context) error {
	c.cache.DeleteAll()
	return nil
}

// Stop terminates the background cleanup goroutine.
func (c *MemoryTokenCache) Stop() {
	c.cache.Stop()
}

var _ TokenCache = (*MemoryTokenCache)(nil)
