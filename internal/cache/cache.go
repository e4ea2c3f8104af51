// Package cache memoizes the table loader by upload content. The key is a
// sha256 of the raw bytes, so identity is the content itself and no
// invalidation policy is needed; capacity and TTL only bound memory.
package cache

import (
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"

	"siteboard/domain/core"
	"siteboard/domain/table"
	"siteboard/ports"
)

// LoaderCache wraps a TableLoader with bounded content-keyed memoization.
// Concurrent uploads of identical bytes collapse to one parse.
type LoaderCache struct {
	loader ports.TableLoader
	store  *ttlcache.Cache[string, *table.Table]
	group  singleflight.Group
}

// New creates a cache in front of the given loader
func New(loader ports.TableLoader, capacity uint64, ttl time.Duration) *LoaderCache {
	store := ttlcache.New[string, *table.Table](
		ttlcache.WithTTL[string, *table.Table](ttl),
		ttlcache.WithCapacity[string, *table.Table](capacity),
	)
	go store.Start()
	return &LoaderCache{loader: loader, store: store}
}

var _ ports.TableLoader = (*LoaderCache)(nil)

// Load returns the memoized table for identical content, parsing on miss.
// Load failures are not cached; a corrected re-upload parses fresh.
func (c *LoaderCache) Load(data []byte, format ports.Format) (*table.Table, error) {
	key := fmt.Sprintf("%s:%s", format, core.NewContentHash(data))

	if item := c.store.Get(key); item != nil {
		return item.Value(), nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if item := c.store.Get(key); item != nil {
			return item.Value(), nil
		}
		t, err := c.loader.Load(data, format)
		if err != nil {
			return nil, err
		}
		c.store.Set(key, t, ttlcache.DefaultTTL)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*table.Table), nil
}

// Len reports how many parsed tables are held
func (c *LoaderCache) Len() int { return c.store.Len() }

// Stop halts the TTL eviction loop
func (c *LoaderCache) Stop() { c.store.Stop() }
