package mcpserver

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/blueprints/blueprint"
)

// cacheEntry holds a resolved blueprint with LRU ordering and TTL expiry.
type cacheEntry struct {
	bp        *blueprint.Blueprint
	touchedAt time.Time
	expiresAt time.Time
}

// blueprintCache keeps resolved blueprints for the session. Named inputs
// expire quickly so edits on disk show up; inline content is keyed by hash.
// Cached blueprints are only read, never mutated.
type blueprintCache struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

func newBlueprintCache(maxSize int) *blueprintCache {
	return &blueprintCache{
		entries: make(map[string]*cacheEntry),
		maxSize: maxSize,
	}
}

// get returns a cached blueprint or nil. Expired entries are lazily removed.
func (c *blueprintCache) get(key string) *blueprint.Blueprint {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	e.touchedAt = time.Now()
	return e.bp
}

// put stores bp for ttl, evicting the least recently used entry when full.
func (c *blueprintCache) put(key string, bp *blueprint.Blueprint, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{bp: bp, touchedAt: now, expiresAt: now.Add(ttl)}
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldest time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.touchedAt.Before(oldest) {
				oldestKey, oldest = k, e.touchedAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = entry
}

// sweep removes expired entries.
func (c *blueprintCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper removes expired entries every interval until ctx is done.
// Only the first call starts a sweeper.
func (c *blueprintCache) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

func (c *blueprintCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
