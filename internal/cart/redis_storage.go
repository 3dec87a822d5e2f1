package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oakline/storefront-backend/pkg/config"
	"github.com/oakline/storefront-backend/pkg/redis"
)

type snapshotKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// RedisStorage persists cart snapshots as serialized item arrays under a
// per-session key. Cross-session writes are last-write-wins at this layer.
type RedisStorage struct {
	kv  snapshotKV
	ttl time.Duration
}

// NewRedisStorage builds snapshot storage on the shared redis client.
func NewRedisStorage(kv snapshotKV, cfg config.CartConfig) (*RedisStorage, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisStorage{kv: kv, ttl: cfg.SnapshotTTL}, nil
}

// Load reads the session's snapshot, returning (nil, nil) when none exists.
func (r *RedisStorage) Load(ctx context.Context, sessionID string) ([]Item, error) {
	raw, err := r.kv.Get(ctx, redis.CartKey(sessionID))
	if err != nil {
		if redis.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return items, nil
}

// Save writes the full snapshot for the session.
func (r *RedisStorage) Save(ctx context.Context, sessionID string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := r.kv.Set(ctx, redis.CartKey(sessionID), string(payload), r.ttl); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

// Clear removes the stored snapshot entirely.
func (r *RedisStorage) Clear(ctx context.Context, sessionID string) error {
	if err := r.kv.Del(ctx, redis.CartKey(sessionID)); err != nil {
		return fmt.Errorf("clear cart snapshot: %w", err)
	}
	return nil
}
