package grants

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keeps a per-user snapshot of granted permission IDs in Redis.
// The grant table stays the source of truth; cache misses and cache errors
// both fall through to the database.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(userID int64) string {
	return fmt.Sprintf("grants:%d", userID)
}

// Get returns the cached grant set for a user, reporting whether it was present.
func (c *Cache) Get(ctx context.Context, userID int64) ([]int64, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var ids []int64
	if err := json.Unmarshal(payload, &ids); err != nil {
		return nil, false
	}
	return ids, true
}

// Set stores the grant set for a user.
func (c *Cache) Set(ctx context.Context, userID int64, ids []int64) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(ids)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(userID), payload, c.ttl).Err()
}

// Invalidate drops the cached grant set for a user.
func (c *Cache) Invalidate(ctx context.Context, userID int64) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, c.key(userID)).Err()
}
