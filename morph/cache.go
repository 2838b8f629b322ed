package morph

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes analyses by raw token. Implementations must be safe for
// concurrent use: analyses run under a shared lock and all of them Put.
type Cache interface {
	Get(token string) (WordAnalysis, bool)
	Put(token string, analysis WordAnalysis)
	InvalidateAll()
	Len() int
}

// MapCache is an unbounded Cache.
type MapCache struct {
	mu sync.RWMutex
	m  map[string]WordAnalysis
}

// NewMapCache returns an empty unbounded cache.
func NewMapCache() *MapCache {
	return &MapCache{m: make(map[string]WordAnalysis)}
}

func (c *MapCache) Get(token string) (WordAnalysis, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.m[token]
	return a, ok
}

func (c *MapCache) Put(token string, analysis WordAnalysis) {
	c.mu.Lock()
	c.m[token] = analysis
	c.mu.Unlock()
}

func (c *MapCache) InvalidateAll() {
	c.mu.Lock()
	clear(c.m)
	c.mu.Unlock()
}

func (c *MapCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// LRUCache is a Cache holding at most a fixed number of tokens, evicting
// the least recently used.
type LRUCache struct {
	c *lru.Cache[string, WordAnalysis]
}

// NewLRUCache returns a cache bounded to size entries. size must be
// positive.
func NewLRUCache(size int) (*LRUCache, error) {
	c, err := lru.New[string, WordAnalysis](size)
	if err != nil {
		return nil, err
	}
	return &LRUCache{c: c}, nil
}

func (c *LRUCache) Get(token string) (WordAnalysis, bool) { return c.c.Get(token) }

func (c *LRUCache) Put(token string, analysis WordAnalysis) { c.c.Add(token, analysis) }

func (c *LRUCache) InvalidateAll() { c.c.Purge() }

func (c *LRUCache) Len() int { return c.c.Len() }
