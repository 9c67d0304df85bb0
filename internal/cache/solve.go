// Package cache keeps recent land price solves in memory so repeated API requests skip the search.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"land-valuation/internal/model"
	"land-valuation/internal/solver"
)

// maxEntries triggers a sweep of expired entries on Set.
const maxEntries = 1024

type entry struct {
	result    *solver.Result
	expiresAt time.Time
}

// SolveCache maps (assumptions, options) to solver results. A nil *SolveCache is a valid,
// always-empty cache. Cached results are shared; callers must not modify them.
type SolveCache struct {
	mu    sync.RWMutex
	store map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

// NewSolveCache returns nil (caching disabled) when ttl <= 0.
func NewSolveCache(ttl time.Duration) *SolveCache {
	if ttl <= 0 {
		return nil
	}
	return &SolveCache{
		store: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Key creates a deterministic key from the solve inputs.
func Key(a model.ProjectAssumptions, opts solver.Options) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%+v|%+v", a, opts)))
	return hex.EncodeToString(hash[:])
}

// Get retrieves a cached result if available and not expired
func (c *SolveCache) Get(key string) (*solver.Result, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.store[key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.result, true
}

// Set stores a result in the cache
func (c *SolveCache) Set(key string, r *solver.Result) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if len(c.store) >= maxEntries {
		for k, e := range c.store {
			if now.After(e.expiresAt) {
				delete(c.store, k)
			}
		}
	}
	if len(c.store) >= maxEntries {
		// Still full of live entries; start over rather than grow without bound.
		c.store = make(map[string]entry)
	}
	c.store[key] = entry{result: r, expiresAt: now.Add(c.ttl)}
}

// Len reports the number of stored entries, expired or not.
func (c *SolveCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}
