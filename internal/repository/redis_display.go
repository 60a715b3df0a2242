package repository

import (
	"context"
	"fmt"
	"time"

	"FinDash/internal/domain/models"
	"FinDash/pkg/cache"
)

// RegionsChannel is the pub/sub channel region updates are published on.
const RegionsChannel = "regions"

// RedisDisplay stores the latest text of each region under region:<name>
// with a TTL, then publishes the update on RegionsChannel.
type RedisDisplay struct {
	cache cache.Service
	ttl   time.Duration
}

// NewRedisDisplay creates a Redis region sink.
func NewRedisDisplay(c cache.Service, ttl time.Duration) *RedisDisplay {
	return &RedisDisplay{cache: c, ttl: ttl}
}

func (r *RedisDisplay) Deliver(ctx context.Context, region models.Region, text string) error {
	if err := r.cache.Set(ctx, RegionKey(region), text, r.ttl); err != nil {
		return fmt.Errorf("set region %s: %w", region, err)
	}
	if err := r.cache.Publish(ctx, RegionsChannel, models.RegionUpdate{Region: region, Text: text}); err != nil {
		return fmt.Errorf("publish region %s: %w", region, err)
	}
	return nil
}

// RegionKey is the cache key holding a region's latest text.
func RegionKey(region models.Region) string {
	return "region:" + string(region)
}
