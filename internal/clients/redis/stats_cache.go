package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
)

// StatsCache holds rendered public-stats payloads. A miss or a redis error
// just means the caller recomputes; the cache never gates correctness.
type StatsCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, payload string)
	Close() error
}

type statsCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewStatsCache connects using REDIS_ADDR. A missing REDIS_ADDR is not an
// error; callers treat a nil cache as "always miss".
func NewStatsCache(log *logger.Logger, ttl time.Duration) (StatsCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &statsCache{
		log: log.With("service", "RedisStatsCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func (c *statsCache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	payload, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("stats cache read failed", "key", key, "error", err)
		}
		return "", false
	}
	return payload, true
}

func (c *statsCache) Set(ctx context.Context, key, payload string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("stats cache write failed", "key", key, "error", err)
	}
}

func (c *statsCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
