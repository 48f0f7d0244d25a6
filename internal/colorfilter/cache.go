package colorfilter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukerupert/shoplisl/internal/metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

// Cache stores solve results by normalized hex color. A local LRU sits in
// front of an optional redis instance shared between processes.
type Cache struct {
	local   *expirable.LRU[string, Result]
	redis   *redis.Client
	prefix  string
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewCache returns a cache holding up to size results for ttl. rdb may be
// nil.
func NewCache(size int, ttl time.Duration, rdb *redis.Client, logger *slog.Logger, mc *metrics.Collector) *Cache {
	if size <= 0 {
		size = 256
	}
	return &Cache{
		local:   expirable.NewLRU[string, Result](size, nil, ttl),
		redis:   rdb,
		prefix:  "shoplisl:filter:",
		ttl:     ttl,
		logger:  logger.With("component", "filter_cache"),
		metrics: mc,
	}
}

// NewRedisClient connects to redisURL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

func (c *Cache) Get(ctx context.Context, key string) (Result, bool) {
	if r, ok := c.local.Get(key); ok {
		c.metrics.RecordCache("local", true)
		return r, true
	}
	c.metrics.RecordCache("local", false)

	if c.redis == nil {
		return Result{}, false
	}

	data, err := c.redis.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.metrics.RecordCache("redis", false)
		return Result{}, false
	}
	if err != nil {
		c.logger.Warn("redis get failed", "key", key, "error", err)
		c.metrics.RecordCache("redis", false)
		return Result{}, false
	}

	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		c.logger.Warn("discarding malformed cache entry", "key", key, "error", err)
		c.metrics.RecordCache("redis", false)
		return Result{}, false
	}
	c.metrics.RecordCache("redis", true)
	c.local.Add(key, r)
	return r, true
}

// Put stores r in both tiers. Redis failures are logged, not returned.
func (c *Cache) Put(ctx context.Context, key string, r Result) {
	c.local.Add(key, r)
	if c.redis == nil {
		return
	}

	data, err := json.Marshal(r)
	if err != nil {
		c.logger.Warn("marshal filter result", "key", key, "error", err)
		return
	}
	if err := c.redis.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", "key", key, "error", err)
	}
}

// Len returns the number of locally cached results.
func (c *Cache) Len() int {
	return c.local.Len()
}
