// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// throttle.go implements the per-slug publish cooldown. The shared
// Redis keyspace makes the cooldown hold across instances; when Redis
// is unreachable the throttle degrades to a per-process map that a
// background sweeper keeps bounded. The cooldown is a guard against
// accidental double-submission, not a security control.
package publish

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// throttleKeyPrefix is the Redis key prefix for publish cooldowns.
const throttleKeyPrefix = "publish-throttle:"

// SlugThrottle rate-limits rapid republishes of the same slug.
type SlugThrottle struct {
	client *redis.Client // nil means in-memory only
	window time.Duration

	mu    sync.Mutex
	local map[string]time.Time

	now    func() time.Time
	stopCh chan struct{}
}

// NewSlugThrottle creates a throttle with the given cooldown window.
// client may be nil for single-instance deployments. A background
// goroutine sweeps expired in-memory entries; call Stop to end it.
func NewSlugThrottle(client *redis.Client, window time.Duration) *SlugThrottle {
	t := &SlugThrottle{
		client: client,
		window: window,
		local:  make(map[string]time.Time),
		now:    time.Now,
		stopCh: make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.sweep()
			case <-t.stopCh:
				return
			}
		}
	}()

	return t
}

// Stop terminates the background sweeper goroutine.
func (t *SlugThrottle) Stop() {
	close(t.stopCh)
}

// Remaining reports how long until the slug may publish again; zero
// means it is free now. Checking does not consume the cooldown — only
// Mark does, after a successful non-idempotent write.
func (t *SlugThrottle) Remaining(ctx context.Context, slug string) time.Duration {
	if t.client != nil {
		ttl, err := t.client.PTTL(ctx, throttleKeyPrefix+slug).Result()
		if err == nil {
			if ttl > 0 {
				return ttl
			}
			return 0
		}
		slog.Warn("throttle redis check failed, using in-memory state", "slug", slug, "error", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	last, ok := t.local[slug]
	if !ok {
		return 0
	}
	if remaining := t.window - t.now().Sub(last); remaining > 0 {
		return remaining
	}
	return 0
}

// Mark records a publish for the slug, starting its cooldown.
func (t *SlugThrottle) Mark(ctx context.Context, slug string) {
	if t.client != nil {
		err := t.client.Set(ctx, throttleKeyPrefix+slug, "1", t.window).Err()
		if err == nil {
			return
		}
		slog.Warn("throttle redis mark failed, using in-memory state", "slug", slug, "error", err)
	}

	t.mu.Lock()
	t.local[slug] = t.now()
	t.mu.Unlock()
}

// sweep evicts expired in-memory entries to bound memory growth.
func (t *SlugThrottle) sweep() {
	cutoff := t.now().Add(-t.window)

	t.mu.Lock()
	defer t.mu.Unlock()
	for slug, last := range t.local {
		if last.Before(cutoff) {
			delete(t.local, slug)
		}
	}
}
