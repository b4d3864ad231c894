package canonical

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache holds the sorted canonical rdata of record sets, keyed by set identity and version.
type Cache interface {
	Get(key string) ([][]byte, bool)
	Put(key string, rdata [][]byte)
	Len() int
	Purge()
	Stats() (hits, misses, evictions uint64)
}

// lruCache is an LRU-backed Cache that counts hits, misses and evictions.
type lruCache struct {
	lru       *lru.Cache[string, [][]byte]
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// disabledCache always misses. It is used when size <= 0.
type disabledCache struct{}

// NewCache creates a Cache with the given capacity. A size <= 0 yields a cache that
// stores nothing and reports no metrics.
func NewCache(size int) (Cache, error) {
	if size <= 0 {
		return disabledCache{}, nil
	}

	c := &lruCache{}
	// evictions include entries dropped by Purge
	inner, err := lru.NewWithEvict(size, func(string, [][]byte) {
		c.evictions.Add(1)
	})
	if err != nil {
		return nil, err
	}
	c.lru = inner
	return c, nil
}

func (c *lruCache) Get(key string) ([][]byte, bool) {
	if v, ok := c.lru.Get(key); ok {
		c.hits.Add(1)
		return v, true
	}
	c.misses.Add(1)
	return nil, false
}

func (c *lruCache) Put(key string, rdata [][]byte) { c.lru.Add(key, rdata) }

func (c *lruCache) Len() int { return c.lru.Len() }

func (c *lruCache) Purge() { c.lru.Purge() }

func (c *lruCache) Stats() (hits, misses, evictions uint64) {
	return c.hits.Load(), c.misses.Load(), c.evictions.Load()
}

func (disabledCache) Get(string) ([][]byte, bool) { return nil, false }

func (disabledCache) Put(string, [][]byte) {}

func (disabledCache) Len() int { return 0 }

func (disabledCache) Purge() {}

func (disabledCache) Stats() (uint64, uint64, uint64) { return 0, 0, 0 }

var _ Cache = (*lruCache)(nil)
var _ Cache = disabledCache{}
