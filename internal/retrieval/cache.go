package retrieval

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/harvestgrid/agrograph-backend/internal/platform/envutil"
	"github.com/harvestgrid/agrograph-backend/internal/platform/logger"
)

// Cache holds formatted context blocks keyed by the query triple. Optional:
// a nil *Cache is a no-op, and cache errors degrade to a direct retrieval.
type Cache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewCacheFromEnv returns (nil, nil) when REDIS_ADDR is unset.
func NewCacheFromEnv(log *logger.Logger) (*Cache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, nil
	}
	ttl := envutil.Seconds("CONTEXT_CACHE_TTL_SECONDS", 5*time.Minute)

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

	return &Cache{
		log: log.With("component", "ContextCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func NewCache(rdb *goredis.Client, log *logger.Logger, ttl time.Duration) *Cache {
	return &Cache{log: log.With("component", "ContextCache"), rdb: rdb, ttl: ttl}
}

func (c *Cache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// Keys are exact: the cache must not introduce case folding the store-side
// matching does not have.
func cacheKey(q Query) string {
	return "context:" + strings.TrimSpace(q.Crop) + "|" + strings.TrimSpace(q.Region) + "|" + strings.TrimSpace(q.SoilType)
}

func (c *Cache) Get(ctx context.Context, q Query) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, cacheKey(q)).Result()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("context cache read failed", "error", err)
		}
		return "", false
	}
	return val, true
}

func (c *Cache) Set(ctx context.Context, q Query, text string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(q), text, c.ttl).Err(); err != nil {
		c.log.Warn("context cache write failed", "error", err)
	}
}
