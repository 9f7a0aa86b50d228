// Package cache provides the screening result cache: TTL-based storage
// keyed by (organization, tier) with single-flight computation, so
// concurrent requests for the same organization share one store query.
package cache

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"compliance-screening-be/pkg/screening"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultMaxEntries bounds the total entry count; eviction on breach is
	// least-recently-used.
	DefaultMaxEntries = 10_000

	purgeInterval = 10 * time.Minute
)

type Cache struct {
	store *gocache.Cache
	group singleflight.Group

	mu         sync.Mutex
	order      *list.List               // front = most recently used
	index      map[string]*list.Element // key -> order element
	maxEntries int
}

func New(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache{
		store:      gocache.New(gocache.NoExpiration, purgeInterval),
		order:      list.New(),
		index:      make(map[string]*list.Element),
		maxEntries: maxEntries,
	}
}

func cacheKey(orgID uuid.UUID, tier screening.ComplexityTier) string {
	return fmt.Sprintf("%s:%s", orgID, tier)
}

// GetOrCompute returns the cached result for (orgID, tier) if fresh, or runs
// compute exactly once across concurrent callers and caches its result for
// ttl. Compute failures propagate to every in-flight waiter and are never
// cached. A caller whose context expires while joined to someone else's
// flight gets ctx.Err back immediately; the flight itself keeps running for
// the remaining waiters.
func (c *Cache) GetOrCompute(ctx context.Context, orgID uuid.UUID, tier screening.ComplexityTier, ttl time.Duration, compute func(ctx context.Context) (*screening.Result, error)) (*screening.Result, error) {
	key := cacheKey(orgID, tier)

	if v, ok := c.store.Get(key); ok {
		c.touch(key)
		return v.(*screening.Result), nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		// A concurrent caller may have populated the entry while we were
		// queued behind the flight.
		if v, ok := c.store.Get(key); ok {
			return v, nil
		}
		res, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.store.Set(key, res, ttl)
		c.touch(key)
		c.enforceCap()
		return res, nil
	})

	select {
	case out := <-ch:
		if out.Err != nil {
			return nil, out.Err
		}
		return out.Val.(*screening.Result), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Peek returns a cached result without computing on miss. Used for deadline
// fallbacks: a stale-tier answer beats an empty one.
func (c *Cache) Peek(orgID uuid.UUID, tier screening.ComplexityTier) (*screening.Result, bool) {
	v, ok := c.store.Get(cacheKey(orgID, tier))
	if !ok {
		return nil, false
	}
	c.touch(cacheKey(orgID, tier))
	return v.(*screening.Result), true
}

// Invalidate removes the organization's entries at every tier. Called on any
// screening-relevant profile or location change.
func (c *Cache) Invalidate(orgID uuid.UUID) {
	for _, tier := range []screening.ComplexityTier{screening.TierBasic, screening.TierEnhanced, screening.TierComprehensive} {
		key := cacheKey(orgID, tier)
		c.store.Delete(key)
		c.forget(key)
	}
}

// Len reports the live entry count.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

func (c *Cache) touch(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.index[key]; ok {
		c.order.MoveToFront(el)
		return
	}
	c.index[key] = c.order.PushFront(key)
}

func (c *Cache) forget(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.index[key]; ok {
		c.order.Remove(el)
		delete(c.index, key)
	}
}

// enforceCap evicts least-recently-used entries until the cap holds. Entries
// already expired out of the TTL store are dropped from the order list as
// they are encountered.
func (c *Cache) enforceCap() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.order.Len() > c.maxEntries {
		el := c.order.Back()
		if el == nil {
			return
		}
		key := el.Value.(string)
		c.order.Remove(el)
		delete(c.index, key)
		c.store.Delete(key)
	}
}

var _ screening.ResultCache = (*Cache)(nil)
