/*
Package cache provides the get-or-populate cache primitive.

PURPOSE:
  The lookup engine never talks to a process-global cache; it receives this
  explicit port so tests can substitute an in-memory fake with controllable
  hit/miss behavior. Values are stored as JSON bytes, which lets the same
  port be served by memory, SQLite, or Redis backends.

KEY TYPES:
  Store:    Byte-level backend (Get/Set/Delete)
  Cache:    JSON codec + per-key single-flight + default TTL on top of Store
  GetOrSet: Typed get-or-compute-and-store helper

SINGLE-FLIGHT:
  Concurrent misses on the same key execute the compute function once; the
  other callers wait and share the result. Failures are never cached.

BEST-EFFORT BACKEND:
  A broken backend degrades to a cache miss on read and a dropped write on
  store; it never fails the lookup itself. Only compute failures propagate.

IMPLEMENTATIONS:
  - memory.go: In-memory TTL store (default, also used by tests)
  - sqlitecache/: Persistent SQLite store
  - rediscache/: Redis store

SEE ALSO:
  - netsuite/service.go: Primary consumer
*/
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// =============================================================================
// STORE - Byte-level backend port
// =============================================================================

// Store persists opaque byte values under string keys.
type Store interface {
	// Get returns the stored value, reporting false when the key is absent
	// or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// =============================================================================
// CACHE - Codec + single-flight over a Store
// =============================================================================

// Cache wraps a Store with JSON encoding, a default TTL, and per-key
// single-flight for concurrent misses.
type Cache struct {
	store Store
	ttl   time.Duration
	group singleflight.Group
}

// New creates a Cache with the given default TTL.
func New(store Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl}
}

// Invalidate drops a key so the next read recomputes.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}

// GetOrSet returns the cached value for key if present, otherwise invokes
// compute, stores the result, and returns it. Compute failures propagate
// and are not cached. A zero-length computed value (e.g. an empty list) is
// a valid result and is cached.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, compute func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	v, err, _ := c.group.Do(key, func() (any, error) {
		if raw, ok, err := c.store.Get(ctx, key); err == nil && ok {
			var cached T
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
			// Unreadable entry: drop it and recompute.
			_ = c.store.Delete(ctx, key)
		}

		computed, err := compute(ctx)
		if err != nil {
			return zero, err
		}

		if raw, err := json.Marshal(computed); err == nil {
			// Best-effort write; a failed store never fails the read.
			_ = c.store.Set(ctx, key, raw, c.ttl)
		}
		return computed, nil
	})
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache: key %q holds %T", key, v)
	}
	return typed, nil
}
