package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const genKey = "tasks:gen"

// TaskListCache keeps rendered /tasks responses in redis. Keys embed a
// generation counter; any task mutation bumps the counter, so stale entries
// are never served and simply age out via TTL. Every failure degrades to the
// database path.
type TaskListCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewTaskListCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *TaskListCache {
	return &TaskListCache{rdb: rdb, ttl: ttl, log: log}
}

// Key builds a cache key for the given listing parameters under the current generation
func (c *TaskListCache) Key(ctx context.Context, parts ...string) string {
	gen, err := c.rdb.Get(ctx, genKey).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache generation read failed", zap.Error(err))
		}
		gen = "0"
	}
	return fmt.Sprintf("tasks:%s:%s", gen, strings.Join(parts, ":"))
}

// Get returns a cached response body, or ok=false on miss or error
func (c *TaskListCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return payload, true
}

// Set stores a response body under the key with the cache TTL
func (c *TaskListCache) Set(ctx context.Context, key string, payload []byte) {
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate bumps the generation, orphaning every cached listing at once
func (c *TaskListCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, genKey).Err(); err != nil {
		c.log.Warn("cache invalidation failed", zap.Error(err))
	}
}
