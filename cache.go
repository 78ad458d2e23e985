package utilcss

import (
	"sync/atomic"

	"github.com/patrickmn/go-cache"
)

// CacheStats is a snapshot of the generation cache counters.
type CacheStats struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	Size    int     `json:"size"`
	HitRate float64 `json:"hit_rate"` // 0 when there have been no lookups
}

// resultCache maps a raw token to its generated result. Entries never
// expire; invalidation is wholesale.
type resultCache struct {
	store  *cache.Cache
	hits   atomic.Uint64
	misses atomic.Uint64
}

func newResultCache() *resultCache {
	return &resultCache{store: cache.New(cache.NoExpiration, 0)}
}

func (c *resultCache) get(token string) (Generated, bool) {
	if v, ok := c.store.Get(token); ok {
		c.hits.Add(1)
		return v.(Generated), true
	}
	c.misses.Add(1)
	return Generated{}, false
}

func (c *resultCache) set(token string, g Generated) {
	c.store.Set(token, g, cache.NoExpiration)
}

// invalidate drops every entry and keeps the counters.
func (c *resultCache) invalidate() {
	c.store.Flush()
}

// reset drops every entry and zeroes the counters.
func (c *resultCache) reset() {
	c.store.Flush()
	c.hits.Store(0)
	c.misses.Store(0)
}

func (c *resultCache) stats() CacheStats {
	s := CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.store.ItemCount(),
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}
