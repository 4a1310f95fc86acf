// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"account_backend/internal/domain"
	"account_backend/internal/domain/entity"
	"account_backend/internal/feature/users/usecase"
)

// CachingUserRepository decorates a UserRepository with a Redis read-through cache for FindByID.
// Every write that changes a user's representation drops its cache entry.
//
// A FindByID that misses the cache can store the user it read after a concurrent
// Update or address write has already dropped the entry. That stale entry is served
// until the TTL expires; no versioning guards against it.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "users".
// A nil rdb disables caching.
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create persists the user. New users are not cached until first read.
func (c *CachingUserRepository) Create(ctx context.Context, u *entity.User) error {
	return c.inner.Create(ctx, u)
}

// FindByID checks the cache first and falls back to the database.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var u entity.User
		if err := json.Unmarshal(b, &u); err == nil {
			return &u, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	u, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(u); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return u, nil
}

// List is not cached.
func (c *CachingUserRepository) List(ctx context.Context) ([]entity.User, error) {
	return c.inner.List(ctx)
}

// Update updates the user and drops its cache entry.
func (c *CachingUserRepository) Update(ctx context.Context, id uint, apply func(u *entity.User)) (*entity.User, error) {
	u, err := c.inner.Update(ctx, id, apply)
	if err != nil {
		return nil, err
	}
	_ = c.Invalidate(ctx, id)
	return u, nil
}

// Delete deletes the user and drops its cache entry.
func (c *CachingUserRepository) Delete(ctx context.Context, id uint) error {
	err := c.inner.Delete(ctx, id)
	if err == nil || errors.Is(err, domain.ErrUserNotFound) {
		_ = c.Invalidate(ctx, id)
	}
	return err
}

// Invalidate drops the cache entry of a user.
func (c *CachingUserRepository) Invalidate(ctx context.Context, id uint) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.cacheKey(id)).Err()
}

// cacheKey generates the cache key of a user.
func (c *CachingUserRepository) cacheKey(id uint) string {
	return fmt.Sprintf("%s:%d", c.namespace, id)
}
