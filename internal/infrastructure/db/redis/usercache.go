package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/freshcodes/identity-gateway/internal/core/domain"
	"github.com/freshcodes/identity-gateway/internal/core/ports"
)

const defaultCacheTTL = 30 * time.Second

// UserCache is a read-through decorator over a UserRepository. Point lookups
// are served from Redis when a fresh copy exists; writes invalidate the cached
// entry. The cache is best-effort: any Redis failure falls back to the store
// so resolution semantics never change, only latency.
//
// Only positive point lookups are cached. Not-found outcomes and the username
// scan always hit the store.
type UserCache struct {
	client *redis.Client
	inner  ports.UserRepository
	ttl    time.Duration
	log    zerolog.Logger
}

// NewUserCache wraps inner with a Redis-backed lookup cache. If ttl <= 0,
// defaultCacheTTL is used.
func NewUserCache(client *redis.Client, inner ports.UserRepository, ttl time.Duration, log zerolog.Logger) *UserCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &UserCache{client: client, inner: inner, ttl: ttl, log: log}
}

func (c *UserCache) FindByKey(ctx context.Context, key string) (*domain.User, error) {
	if raw, err := c.client.Get(ctx, c.cacheKey(key)).Bytes(); err == nil {
		var u domain.User
		if err := json.Unmarshal(raw, &u); err == nil {
			return &u, nil
		}
		// Corrupt entry: drop it and fall through to the store.
		c.client.Del(ctx, c.cacheKey(key))
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Str("key", key).Msg("user cache read failed")
	}

	u, err := c.inner.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, u)
	return u, nil
}

func (c *UserCache) FindFirstByUsername(ctx context.Context, username string) (*domain.User, error) {
	return c.inner.FindFirstByUsername(ctx, username)
}

func (c *UserCache) Upsert(ctx context.Context, user *domain.User) error {
	if err := c.inner.Upsert(ctx, user); err != nil {
		return err
	}
	c.invalidate(ctx, user.StorageKey())
	return nil
}

func (c *UserCache) PatchRole(ctx context.Context, key, role string, updatedAt time.Time) error {
	if err := c.inner.PatchRole(ctx, key, role, updatedAt); err != nil {
		return err
	}
	c.invalidate(ctx, key)
	return nil
}

func (c *UserCache) store(ctx context.Context, key string, u *domain.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.cacheKey(key), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("user cache write failed")
	}
}

func (c *UserCache) invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.cacheKey(key)).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("user cache invalidation failed")
	}
}

func (c *UserCache) cacheKey(key string) string {
	return "identity:user:" + key
}
