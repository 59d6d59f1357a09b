/*
Package rediscache provides a Redis-backed cache.Store.

PURPOSE:
  Shared cache backend for multi-instance deployments: every instance sees
  the same lookup snapshots and a single fetch warms them all. TTL is
  delegated to Redis key expiry.

USAGE:
  store := rediscache.New(redis.NewClient(&redis.Options{Addr: addr}))
  c := cache.New(store, 15*time.Minute)

SEE ALSO:
  - cache/cache.go: Store port
  - cache/sqlitecache: Single-instance persistent variant
*/
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces cache entries away from other users of the instance.
const keyPrefix = "dimension-engine:"

// Store implements cache.Store on Redis.
type Store struct {
	rdb *redis.Client
}

// New wraps an existing Redis client.
func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %q: %w", key, err)
	}
	return raw, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0 // redis treats 0 as "no expiry"
	}
	if err := s.rdb.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("cache delete %q: %w", key, err)
	}
	return nil
}
