// Package redis provides cache-aside decorators for the carrier and rule
// read paths. Resolution reads the full active carrier set and zone ruleset
// on every order, so both are cached as JSON documents with a short TTL.
// Cache failures never fail a request: the decorators log and fall through
// to the underlying repository.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultTTL bounds how stale a cached carrier set or ruleset can get.
const DefaultTTL = 5 * time.Minute

// Cache wraps a redis client with the key conventions used by the decorators.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// NewCache connects to redis and verifies the connection with a ping.
func NewCache(addr string, password string, db int, ttl time.Duration, log *slog.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache{client: client, ttl: ttl, log: log}, nil
}

// Close releases the underlying client connections.
func (c *Cache) Close() error {
	return c.client.Close()
}

// getBytes returns the cached payload, or nil on a miss.
func (c *Cache) getBytes(ctx context.Context, key string) []byte {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache read failed", "key", key, "error", err)
		}
		return nil
	}
	return data
}

// setBytes stores the payload with the configured TTL, logging failures.
func (c *Cache) setBytes(ctx context.Context, key string, data []byte) {
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", "key", key, "error", err)
	}
}

// invalidate drops keys after a write to the underlying store.
func (c *Cache) invalidate(ctx context.Context, keys ...string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}

func carriersKey(tenantID string) string {
	return fmt.Sprintf("carriers:%s", tenantID)
}

func rulesKey(tenantID, zone string) string {
	return fmt.Sprintf("rules:%s:%s", tenantID, zone)
}

func tenantRulesPattern(tenantID string) string {
	return fmt.Sprintf("rules:%s:*", tenantID)
}

// invalidatePattern drops all keys matching the pattern. Used when a rule
// write cannot name the exact zone keys it made stale.
func (c *Cache) invalidatePattern(ctx context.Context, pattern string) {
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("cache scan failed", "pattern", pattern, "error", err)
		return
	}
	if len(keys) > 0 {
		c.invalidate(ctx, keys...)
	}
}
