package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "cart:"
	defaultTTL       = 15 * time.Minute
	defaultMaxJitter = 4 * time.Minute
)

// RedisCache keeps JSON snapshots of carts under "<prefix><owner>". Every
// entry expires after the base TTL plus a random jitter so that carts cached
// together do not expire together.
type RedisCache struct {
	client    redis.Cmdable
	prefix    string
	baseTTL   time.Duration
	maxJitter time.Duration
	jitter    func(max time.Duration) time.Duration
}

type Option func(*RedisCache)

func WithTTL(base, maxJitter time.Duration) Option {
	return func(c *RedisCache) {
		c.baseTTL = base
		c.maxJitter = maxJitter
	}
}

func WithKeyPrefix(prefix string) Option {
	return func(c *RedisCache) { c.prefix = prefix }
}

func NewRedisCache(client redis.Cmdable, opts ...Option) *RedisCache {
	c := &RedisCache{
		client:    client,
		prefix:    defaultKeyPrefix,
		baseTTL:   defaultTTL,
		maxJitter: defaultMaxJitter,
		jitter:    randomJitter,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns ErrCacheMiss when no entry exists. An entry that no longer
// decodes is evicted and reported as an error.
func (c *RedisCache) Get(ctx context.Context, owner string) (*domain.Cart, error) {
	key := c.key(owner)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, ErrCacheMiss
	case err != nil:
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	cart := new(domain.Cart)
	if err := json.Unmarshal(raw, cart); err != nil {
		c.client.Del(ctx, key)
		return nil, fmt.Errorf("decode cached cart %s: %w", key, err)
	}
	return cart, nil
}

func (c *RedisCache) Set(ctx context.Context, owner string, cart *domain.Cart) error {
	if cart == nil {
		return errors.New("cache: nil cart")
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	key := c.key(owner)
	if err := c.client.Set(ctx, key, raw, c.expiry()).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, owner string) error {
	key := c.key(owner)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) key(owner string) string {
	return c.prefix + owner
}

func (c *RedisCache) expiry() time.Duration {
	if c.maxJitter <= 0 {
		return c.baseTTL
	}
	return c.baseTTL + c.jitter(c.maxJitter)
}

func randomJitter(max time.Duration) time.Duration {
	return time.Duration(rand.Int63n(int64(max) + 1))
}
