// Package cache is the bounded-staleness snapshot layer in front of the
// global feed. It is a collaborator of the feed service, never of the
// entity store: writes invalidate it, reads may be up to the TTL stale,
// and the whole thing is optional at wiring time.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// GlobalFeedTTL bounds how stale a served global-feed snapshot may be.
const GlobalFeedTTL = 20 * time.Second

const versionKey = "feed:global:ver"

// FeedCache stores serialized feed pages in redis. All methods are
// best-effort: a redis failure degrades to a cache miss, never an error.
type FeedCache struct {
	rdb *redis.Client
}

// NewFeedCache creates a FeedCache over the given client
func NewFeedCache(rdb *redis.Client) *FeedCache {
	return &FeedCache{rdb: rdb}
}

func (c *FeedCache) pageKey(ctx context.Context, page int) (string, error) {
	ver, err := c.rdb.Get(ctx, versionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("feed:global:%d:page:%d", ver, page), nil
}

// GetGlobalPage returns the cached snapshot of a global-feed page
func (c *FeedCache) GetGlobalPage(ctx context.Context, page int) ([]byte, bool) {
	key, err := c.pageKey(ctx, page)
	if err != nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// SetGlobalPage stores a snapshot of a global-feed page for GlobalFeedTTL
func (c *FeedCache) SetGlobalPage(ctx context.Context, page int, payload []byte) {
	key, err := c.pageKey(ctx, page)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, payload, GlobalFeedTTL)
}

// InvalidateGlobal drops every cached global-feed page by bumping the key
// version; stale entries expire on their own.
func (c *FeedCache) InvalidateGlobal(ctx context.Context) {
	c.rdb.Incr(ctx, versionKey)
}
