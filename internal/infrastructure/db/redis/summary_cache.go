package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/datawolt/datawolt/internal/core/aggregate"
)

const (
	// summaryKey is versioned so a payload layout change never decodes stale data.
	summaryKey      = "datawolt:summary:v1"
	defaultCacheTTL = 10 * time.Minute
)

// SummaryCache stores the last computed cross-user summary as JSON.
type SummaryCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewSummaryCache wraps client. A non-positive ttl falls back to ten minutes.
func NewSummaryCache(client redis.Cmdable, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &SummaryCache{client: client, ttl: ttl}
}

// Get returns the cached summary. A missing key is a miss, not an error.
func (c *SummaryCache) Get(ctx context.Context) (*aggregate.Summary, bool, error) {
	raw, err := c.client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("summary cache get: %w", err)
	}

	var s aggregate.Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, fmt.Errorf("summary cache decode: %w", err)
	}
	return &s, true, nil
}

// Set stores s until the TTL elapses or the cache is invalidated.
func (c *SummaryCache) Set(ctx context.Context, s *aggregate.Summary) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("summary cache encode: %w", err)
	}
	return c.client.Set(ctx, summaryKey, raw, c.ttl).Err()
}

// Invalidate drops the cached summary. Called after every committed snapshot.
func (c *SummaryCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, summaryKey).Err()
}
