package cache

import (
	"context"
	"fmt"
	"time"

	"impulso/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis using the loaded config. Returns nil when
// the server is unreachable; callers degrade by serving uncached reads.
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

// FeaturedCache memoizes rendered featured-slot responses for a short TTL.
// The read path is hot (every home page render) while slot contents change
// only on purchase or expiry, so a few seconds of staleness is acceptable.
type FeaturedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFeaturedCache(rdb *redis.Client, ttl time.Duration) *FeaturedCache {
	return &FeaturedCache{rdb: rdb, ttl: ttl}
}

// Key builds the cache key from everything that shapes the response.
func (c *FeaturedCache) Key(slotKey, verticalKey, listingType string, userID, companyID uint, limit int) string {
	return fmt.Sprintf("featured:%s:%s:%s:%d:%d:%d", verticalKey, slotKey, listingType, userID, companyID, limit)
}

func (c *FeaturedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *FeaturedCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	// Cache failures are invisible to callers; the next read just misses.
	_ = c.rdb.Set(ctx, key, payload, c.ttl).Err()
}
