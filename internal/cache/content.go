// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// content.go provides a Redis-backed cache of published page content.
// The public read path serves the normalized JSON straight from Redis
// so repeat requests skip the database entirely.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// contentKeyPrefix is the Redis key prefix for cached pages.
	contentKeyPrefix = "page:"

	// DefaultContentTTL is how long published content stays cached.
	DefaultContentTTL = 5 * time.Minute
)

// ContentCache manages published-content caching in Redis.
type ContentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewContentCache creates a content cache backed by the given client.
func NewContentCache(client *redis.Client, ttl time.Duration) *ContentCache {
	if ttl == 0 {
		ttl = DefaultContentTTL
	}
	return &ContentCache{client: client, ttl: ttl}
}

// Get retrieves cached content JSON for a slug. The second return is
// false on miss or cache error; errors degrade to misses.
func (cc *ContentCache) Get(ctx context.Context, slug string) ([]byte, bool) {
	val, err := cc.client.Get(ctx, contentKeyPrefix+slug).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("content cache get error", "slug", slug, "error", err)
		return nil, false
	}
	slog.Debug("content cache hit", "slug", slug)
	return val, true
}

// Set stores content JSON for a slug with the configured TTL.
func (cc *ContentCache) Set(ctx context.Context, slug string, body []byte) {
	if err := cc.client.Set(ctx, contentKeyPrefix+slug, body, cc.ttl).Err(); err != nil {
		slog.Warn("content cache set error", "slug", slug, "error", err)
	}
}

// Invalidate removes a single page from the cache by its slug.
func (cc *ContentCache) Invalidate(ctx context.Context, slug string) {
	if err := cc.client.Del(ctx, contentKeyPrefix+slug).Err(); err != nil {
		slog.Warn("content cache invalidate error", "slug", slug, "error", err)
	}
	slog.Debug("content cache invalidated", "slug", slug)
}

// InvalidateAll removes every cached page by scanning for the prefix.
func (cc *ContentCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := cc.client.Scan(ctx, cursor, contentKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("content cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := cc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("content cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("content cache fully cleared", "deleted", deleted)
	}
}
