package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	treeKey = "categories:tree"
	treeTTL = 5 * time.Minute
)

// TreeCache keeps the rendered category tree in Redis. A nil *TreeCache is a
// valid no-op cache, so callers never branch on whether Redis is configured.
type TreeCache struct {
	rdb *redis.Client
}

func NewTreeCache(addr string) *TreeCache {
	if addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unreachable at %s, tree cache disabled: %v", addr, err)
		return nil
	}
	return &TreeCache{rdb: rdb}
}

func (c *TreeCache) Get(ctx context.Context) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, treeKey).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (c *TreeCache) Set(ctx context.Context, payload []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, treeKey, payload, treeTTL).Err(); err != nil {
		log.Println("tree cache set failed:", err)
	}
}

func (c *TreeCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, treeKey).Err(); err != nil {
		log.Println("tree cache invalidate failed:", err)
	}
}
