// Package cache holds short-lived region snapshots read on every standings
// request.
package cache

import (
	"context"
	"fmt"
	"time"

	"vct-standings/internal/constants"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

type Cache[K comparable, V any] struct {
	ttl   time.Duration
	items *ttlcache.Cache[K, V]
	group singleflight.Group
}

// New returns a cache whose entries expire after ttl. A zero ttl disables
// caching; every lookup goes to the loader.
func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		ttl: ttl,
		items: ttlcache.New[K, V](
			ttlcache.WithTTL[K, V](ttl),
			ttlcache.WithDisableTouchOnHit[K, V](),
		),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	if c.ttl <= 0 {
		var zero V
		return zero, false
	}

	item := c.items.Get(key)
	if item == nil {
		var zero V
		return zero, false
	}
	return item.Value(), true
}

func (c *Cache[K, V]) Set(key K, value V) {
	if c.ttl <= 0 {
		return
	}
	c.items.Set(key, value, ttlcache.DefaultTTL)
}

func (c *Cache[K, V]) Invalidate(key K) {
	c.items.Delete(key)
	c.group.Forget(fmt.Sprint(key))
}

// GetOrLoad returns the cached value or calls load once for all concurrent
// callers of the same key. The load runs detached from any single caller,
// bounded by constants.DatabaseTimeout; each caller still returns early when
// its own ctx ends. Errors are not cached.
func (c *Cache[K, V]) GetOrLoad(ctx context.Context, key K, load func(context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	ch := c.group.DoChan(fmt.Sprint(key), func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.DatabaseTimeout)
		defer cancel()

		v, err := load(loadCtx)
		if err != nil {
			return v, err
		}
		c.Set(key, v)
		return v, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}
