package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"TickerSignal/internal/model"
)

// CachingFetcher decorates a Fetcher with a Redis read-through cache.
// Cache failures never fail a fetch.
type CachingFetcher struct {
	inner     Fetcher
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingFetcher wraps inner. If ttl is 0 it defaults to 15 minutes; if
// namespace is empty it uses "bars". A nil client disables caching.
func NewCachingFetcher(rdb *redis.Client, ttl time.Duration, inner Fetcher, namespace string) *CachingFetcher {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if namespace == "" {
		namespace = "bars"
	}
	return &CachingFetcher{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

func (c *CachingFetcher) Name() string { return c.inner.Name() }

// FetchDailyBars checks the cache first, then falls back to the inner fetcher.
func (c *CachingFetcher) FetchDailyBars(ctx context.Context, symbol string, bars int) ([]model.PricePoint, error) {
	if c.rdb == nil {
		return c.inner.FetchDailyBars(ctx, symbol, bars)
	}

	key := c.cacheKey(symbol, bars)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []model.PricePoint
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FetchDailyBars(ctx, symbol, bars)
	if err != nil {
		return nil, err
	}

	if len(out) > 0 {
		if b, err := json.Marshal(out); err == nil {
			_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
		}
	}
	return out, nil
}

func (c *CachingFetcher) cacheKey(symbol string, bars int) string {
	return fmt.Sprintf("%s:%s:%s:%d", c.namespace, c.inner.Name(), safeKey(strings.ToUpper(symbol)), bars)
}

// safeKey escapes characters that are problematic for Redis keys.
func safeKey(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
