package cache

import (
	"testing"
	"time"
)

func TestRedisOptions(t *testing.T) {
	cfg := &RedisConfig{}
	for _, opt := range []RedisOption{
		WithRedisHost("cache"),
		WithRedisPort(6380),
		WithRedisDB(2),
		WithRedisPool(10, 3, 2*time.Second),
		WithRedisPrefix("dash"),
	} {
		opt(cfg)
	}
	if cfg.Host != "cache" || cfg.Port != 6380 || cfg.DB != 2 || cfg.Prefix != "dash" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.PoolSize != 10 || cfg.MinIdleConns != 3 || cfg.PoolTimeout != 2*time.Second {
		t.Fatalf("pool = %d/%d/%v", cfg.PoolSize, cfg.MinIdleConns, cfg.PoolTimeout)
	}
}

func TestWrapKey(t *testing.T) {
	if got := NewRedisCacheWithClient(nil, "findash").wrapKey("region:report"); got != "findash:region:report" {
		t.Fatalf("wrapKey = %q", got)
	}
	if got := NewRedisCacheWithClient(nil, "").wrapKey("regions"); got != "regions" {
		t.Fatalf("wrapKey = %q", got)
	}
}
