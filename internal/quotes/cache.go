package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cached decorates a Source with a Redis read-through cache. It serves the
// advisory read paths (quote endpoint, valuation); the trade engine must
// keep using the undecorated source so a committed trade always carries a
// fresh price.
type Cached struct {
	source Source
	rdb    *redis.Client
	ttl    time.Duration
}

func NewCached(source Source, rdb *redis.Client, ttl time.Duration) *Cached {
	return &Cached{source: source, rdb: rdb, ttl: ttl}
}

func cacheKey(symbol string) string {
	return fmt.Sprintf("quote:%s", symbol)
}

func (c *Cached) Lookup(ctx context.Context, symbol string) (Quote, error) {
	cached, err := c.rdb.Get(ctx, cacheKey(symbol)).Result()
	if err == nil {
		var q Quote
		if err := json.Unmarshal([]byte(cached), &q); err == nil {
			return q, nil
		}
		// Undecodable entries fall through to the source.
	}

	q, err := c.source.Lookup(ctx, symbol)
	if err != nil {
		return Quote{}, err
	}

	if data, err := json.Marshal(q); err == nil {
		// Best effort: a cache write failure never fails the lookup.
		c.rdb.Set(ctx, cacheKey(symbol), data, c.ttl)
	}

	return q, nil
}
