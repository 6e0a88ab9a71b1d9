package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-clouds/compute"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const loginCredentialCacheKeyPrefix = "go-clouds::login_credentials::v1"

type CachedLoginCredentialStore struct {
	base  compute.CredentialStore
	cache repositorycache.CacheService
}

type cachedLoginCredentials struct {
	Credentials compute.LoginCredentials
	Found       bool
}

func NewCachedLoginCredentialStore(
	base compute.CredentialStore,
	cacheService repositorycache.CacheService,
) (*CachedLoginCredentialStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base login credential store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: login credential cache service is required")
	}
	return &CachedLoginCredentialStore{base: base, cache: cacheService}, nil
}

// LoginCredentialCacheKey returns go-clouds::login_credentials::v1::<key>
// with the trimmed key URL-path escaped.
func LoginCredentialCacheKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", compute.ErrCredentialKeyRequired
	}
	return loginCredentialCacheKeyPrefix + "::" + url.PathEscape(key), nil
}

func (s *CachedLoginCredentialStore) Get(ctx context.Context, key string) (compute.LoginCredentials, bool, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return compute.LoginCredentials{}, false, fmt.Errorf("sqlstore: cached login credential store is not configured")
	}
	cacheKey, err := LoginCredentialCacheKey(key)
	if err != nil {
		return compute.LoginCredentials{}, false, err
	}
	key = strings.TrimSpace(key)

	entry, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (cachedLoginCredentials, error) {
		credentials, found, fetchErr := s.base.Get(ctx, key)
		if fetchErr != nil {
			return cachedLoginCredentials{}, fetchErr
		}
		return cachedLoginCredentials{Credentials: credentials, Found: found}, nil
	})
	if err != nil {
		return compute.LoginCredentials{}, false, err
	}
	return entry.Credentials, entry.Found, nil
}

func (s *CachedLoginCredentialStore) Put(ctx context.Context, key string, credentials compute.LoginCredentials) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached login credential store is not configured")
	}
	cacheKey, err := LoginCredentialCacheKey(key)
	if err != nil {
		return err
	}
	if err := s.base.Put(ctx, strings.TrimSpace(key), credentials); err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

func (s *CachedLoginCredentialStore) Delete(ctx context.Context, key string) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached login credential store is not configured")
	}
	cacheKey, err := LoginCredentialCacheKey(key)
	if err != nil {
		return err
	}
	if err := s.base.Delete(ctx, strings.TrimSpace(key)); err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

var _ compute.CredentialStore = (*CachedLoginCredentialStore)(nil)
