package cache

import (
	"context"
	"time"
)

// Service is the key/value plus pub/sub surface used by the dashboard.
// Keys and channels are namespaced by the implementation's prefix.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}
