// Package cache provides read-through caches sitting in front of the
// persistent token store.
package cache

import (
	"context"
	"errors"

	"github.com/geofront-io/geofront/domain"
)

// ErrCacheMiss is returned by Get when the token is not cached. Callers
// fall through to the persistent store.
var ErrCacheMiss = errors.New("token not cached")

// TokenCache caches issued access tokens until their expiry.
type TokenCache interface {
	Set(ctx context.Context, token *domain.AccessToken) error
	Get(ctx context.Context, token string) (*domain.AccessToken, error)
	Delete(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
