package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const contentKeyPrefix = "content:"

// ContentCache caches rendered published content in Valkey. Only published
// items are ever cached; drafts and in-review content always hit Postgres.
type ContentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewContentCache creates a content cache with the given TTL.
func NewContentCache(client *redis.Client, ttl time.Duration) *ContentCache {
	return &ContentCache{client: client, ttl: ttl}
}

// Get returns the cached payload for a key, or nil on a miss.
// Cache errors are logged and treated as misses so Valkey outages
// degrade to direct database reads.
func (c *ContentCache) Get(ctx context.Context, key string) []byte {
	payload, err := c.client.Get(ctx, contentKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		slog.Warn("content cache get failed", "key", key, "error", err)
		return nil
	}
	return payload
}

// Set stores a payload under a key with the configured TTL.
func (c *ContentCache) Set(ctx context.Context, key string, payload []byte) {
	if err := c.client.Set(ctx, contentKeyPrefix+key, payload, c.ttl).Err(); err != nil {
		slog.Warn("content cache set failed", "key", key, "error", err)
	}
}

// Invalidate removes a single cached entry.
func (c *ContentCache) Invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, contentKeyPrefix+key).Err(); err != nil {
		slog.Warn("content cache invalidate failed", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached content entry. Called whenever an
// item reaches or leaves the published state, since list pages embed
// item summaries.
func (c *ContentCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, contentKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("content cache scan failed", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("content cache flush failed", "error", err)
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}

// Key builds a cache key for a published item or listing.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
