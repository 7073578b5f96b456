package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// CatalogCache implements ports.CatalogCache using Redis. The catalog is
// reference data, so a short TTL is the only invalidation needed.
type CatalogCache struct {
	client *goredis.Client
	key    string
}

// NewCatalogCache creates a new Redis-backed catalog cache.
func NewCatalogCache(client *goredis.Client) *CatalogCache {
	return &CatalogCache{
		client: client,
		key:    "catalog:merchandise",
	}
}

// Get retrieves the cached merchandise listing.
// Returns nil, nil if the key does not exist.
func (c *CatalogCache) Get(ctx context.Context) ([]byte, error) {
	val, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis catalog get: %w", err)
	}
	return val, nil
}

// Set stores the merchandise listing with TTL.
func (c *CatalogCache) Set(ctx context.Context, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis catalog set: %w", err)
	}
	return nil
}
