// Package cache fronts tenant timezone lookups with Redis. The filter
// path resolves a timezone on every date-range query, so the setting is
// served from cache with a short TTL and invalidated on admin changes.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	tenantmetrics "daybound/internal/tenant/metrics"
	id "daybound/pkg/domain"
)

// TimezoneStore is the slice of the tenant store the cache wraps.
type TimezoneStore interface {
	TimezoneByID(ctx context.Context, tenantID id.TenantID) (string, error)
}

// Timezone is a read-through cache. A nil Redis client degrades to plain
// store lookups, so development without Redis keeps working.
type Timezone struct {
	client  *redis.Client
	store   TimezoneStore
	ttl     time.Duration
	logger  *slog.Logger
	metrics *tenantmetrics.Metrics
}

func NewTimezone(client *redis.Client, store TimezoneStore, ttl time.Duration, logger *slog.Logger, m *tenantmetrics.Metrics) *Timezone {
	return &Timezone{client: client, store: store, ttl: ttl, logger: logger, metrics: m}
}

// TimezoneByID returns the tenant's timezone, preferring cache. Redis
// failures are logged and fall through to the store; the cache is an
// optimization, never a point of failure for the filter path.
func (c *Timezone) TimezoneByID(ctx context.Context, tenantID id.TenantID) (string, error) {
	if c.client != nil {
		tz, err := c.client.Get(ctx, c.key(tenantID)).Result()
		switch {
		case err == nil && tz != "":
			c.metrics.RecordCacheHit()
			return tz, nil
		case err != nil && !errors.Is(err, redis.Nil):
			c.logger.WarnContext(ctx, "timezone cache read failed",
				"tenant_id", tenantID.String(),
				"error", err.Error(),
			)
		}
	}

	c.metrics.RecordCacheMiss()
	tz, err := c.store.TimezoneByID(ctx, tenantID)
	if err != nil {
		return "", err
	}

	if c.client != nil {
		if err := c.client.Set(ctx, c.key(tenantID), tz, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "timezone cache write failed",
				"tenant_id", tenantID.String(),
				"error", err.Error(),
			)
		}
	}
	return tz, nil
}

// Invalidate drops the cached entry after an admin changes the tenant's
// timezone or status. The TTL bounds staleness even if this call fails.
func (c *Timezone) Invalidate(ctx context.Context, tenantID id.TenantID) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(tenantID)).Err(); err != nil {
		c.logger.WarnContext(ctx, "timezone cache invalidation failed",
			"tenant_id", tenantID.String(),
			"error", err.Error(),
		)
	}
}

func (c *Timezone) key(tenantID id.TenantID) string {
	return "daybound:tenant:tz:" + tenantID.String()
}
