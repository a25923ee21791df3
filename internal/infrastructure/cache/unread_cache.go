package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const unreadKeyPrefix = "convenio:unread:"

// UnreadCountCache caches per-convenio pending-action counts so the
// dashboard badge does not hit the database on every poll. Entries are
// invalidated whenever an action row is written.
type UnreadCountCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUnreadCountCache creates a cache with the given entry TTL
func NewUnreadCountCache(client *redis.Client, ttl time.Duration) *UnreadCountCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &UnreadCountCache{client: client, ttl: ttl}
}

func (c *UnreadCountCache) key(convenioID int64) string {
	return unreadKeyPrefix + strconv.FormatInt(convenioID, 10)
}

// Get returns the cached count; found is false on a miss
func (c *UnreadCountCache) Get(ctx context.Context, convenioID int64) (count int64, found bool, err error) {
	val, err := c.client.Get(ctx, c.key(convenioID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read unread count cache: %w", err)
	}
	count, err = strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return count, true, nil
}

// Set stores the count for the convenio
func (c *UnreadCountCache) Set(ctx context.Context, convenioID, count int64) error {
	return c.client.Set(ctx, c.key(convenioID), strconv.FormatInt(count, 10), c.ttl).Err()
}

// Invalidate drops the cached count after an action write
func (c *UnreadCountCache) Invalidate(ctx context.Context, convenioID int64) error {
	return c.client.Del(ctx, c.key(convenioID)).Err()
}
