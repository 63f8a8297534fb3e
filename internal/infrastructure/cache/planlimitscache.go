// Package cache provides Redis-backed caches for hot read paths.
package cache

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"facturo/internal/shared/logger"
)

const (
	planLimitsKeyPrefix = "plan:limits:"
	planLimitsTTLJitter = 10 * time.Minute // anti-stampede
)

// RedisPlanLimitsCache caches resolved plan limits documents as Redis hashes,
// one field per limit key. It is strictly best-effort: every failure degrades
// to a cache miss and the caller falls through to the repository. Only the
// advisory read path consults it; enforcement always reads fresh.
type RedisPlanLimitsCache struct {
	client  *redis.Client
	baseTTL time.Duration
	logger  logger.Interface
}

// NewRedisPlanLimitsCache creates a new Redis-based plan limits cache
func NewRedisPlanLimitsCache(client *redis.Client, baseTTL time.Duration, logger logger.Interface) *RedisPlanLimitsCache {
	return &RedisPlanLimitsCache{
		client:  client,
		baseTTL: baseTTL,
		logger:  logger,
	}
}

func (c *RedisPlanLimitsCache) key(planID uint) string {
	return fmt.Sprintf("%s%d", planLimitsKeyPrefix, planID)
}

// GetLimits retrieves a plan's limits from cache. The second return is false
// on a miss or any cache failure.
func (c *RedisPlanLimitsCache) GetLimits(ctx context.Context, planID uint) (map[string]int, bool) {
	result, err := c.client.HGetAll(ctx, c.key(planID)).Result()
	if err != nil {
		c.logger.Warnw("failed to get plan limits from cache", "error", err, "plan_id", planID)
		return nil, false
	}
	if len(result) == 0 {
		return nil, false // cache miss
	}

	limits := make(map[string]int, len(result))
	for field, raw := range result {
		value, err := strconv.Atoi(raw)
		if err != nil {
			// A corrupt field poisons the whole document; treat as a miss.
			c.logger.Warnw("corrupt plan limits cache entry",
				"plan_id", planID, "field", field, "value", raw)
			return nil, false
		}
		limits[field] = value
	}

	return limits, true
}

// SetLimits stores a plan's limits in cache with a jittered TTL.
func (c *RedisPlanLimitsCache) SetLimits(ctx context.Context, planID uint, limits map[string]int) {
	key := c.key(planID)

	fields := make(map[string]interface{}, len(limits))
	for k, v := range limits {
		fields[k] = v
	}

	pipe := c.client.Pipeline()
	// Drop stale fields first; limits documents can lose keys on rollback.
	pipe.Del(ctx, key)
	if len(fields) > 0 {
		pipe.HSet(ctx, key, fields)
	}
	pipe.Expire(ctx, key, c.ttlWithJitter())

	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warnw("failed to cache plan limits", "error", err, "plan_id", planID)
		return
	}

	c.logger.Debugw("plan limits cached", "plan_id", planID, "keys", len(limits))
}

// Invalidate removes a plan's limits from cache after a limits update.
func (c *RedisPlanLimitsCache) Invalidate(ctx context.Context, planID uint) {
	if err := c.client.Del(ctx, c.key(planID)).Err(); err != nil {
		c.logger.Warnw("failed to invalidate plan limits cache", "error", err, "plan_id", planID)
		return
	}

	c.logger.Debugw("plan limits cache invalidated", "plan_id", planID)
}

// ttlWithJitter randomizes the TTL so entries for popular plans do not all
// expire in the same instant.
func (c *RedisPlanLimitsCache) ttlWithJitter() time.Duration {
	jitter := time.Duration(rand.Int64N(int64(planLimitsTTLJitter)))
	return c.baseTTL + jitter
}
