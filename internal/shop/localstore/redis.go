// internal/shop/localstore/redis.go
package localstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by Redis, scoped to a single device id.
// It is how a stateless API keeps per-device anonymous shopping state.
type RedisStore struct {
	client   *redis.Client
	deviceID string
	ttl      time.Duration
}

// NewRedisStore creates a device-scoped Redis store
func NewRedisStore(client *redis.Client, deviceID string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:   client,
		deviceID: deviceID,
		ttl:      ttl,
	}
}

func (r *RedisStore) storageKey(key string) string {
	return fmt.Sprintf("shop:device:%s:%s", r.deviceID, key)
}

// Get returns the stored value for key, or nil when absent
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.storageKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read local store key %q: %w", key, err)
	}
	return value, nil
}

// Set overwrites the value for key and refreshes the device TTL
func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.storageKey(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write local store key %q: %w", key, err)
	}
	return nil
}

// Del removes the given keys
func (r *RedisStore) Del(ctx context.Context, keys ...string) error {
	storageKeys := make([]string, len(keys))
	for i, key := range keys {
		storageKeys[i] = r.storageKey(key)
	}
	return r.client.Del(ctx, storageKeys...).Err()
}
