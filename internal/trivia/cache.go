package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheTTL = 10 * time.Minute
	categoriesKey   = "trivia:categories"
)

// CategoryCache stores the id -> type category map. Get returns nil, nil on a
// miss.
type CategoryCache interface {
	Get(ctx context.Context) (map[int64]string, error)
	Set(ctx context.Context, categories map[int64]string) error
}

// Cache is the Redis-backed CategoryCache. Categories are read-only for this
// service, so expiry is the only invalidation.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ CategoryCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context) (map[int64]string, error) {
	data, err := c.client.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var categories map[int64]string
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Cache) Set(ctx context.Context, categories map[int64]string) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, categoriesKey, data, c.ttl).Err()
}
