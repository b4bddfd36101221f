package fonts

import (
	"sort"
	"sync"
)

// handleCache is a thread-safe map of loaded handles keyed by font ID with
// an optional soft limit. When the limit is exceeded the least recently
// used quarter of the entries is evicted. Pinned entries never count
// toward the limit and are never evicted.
type handleCache struct {
	mu        sync.Mutex
	entries   map[string]*cacheEntry
	softLimit int
	tick      int64
}

type cacheEntry struct {
	handle Handle
	atime  int64
	pinned bool
}

func newHandleCache(softLimit int) *handleCache {
	return &handleCache{
		entries:   make(map[string]*cacheEntry),
		softLimit: softLimit,
	}
}

func (c *handleCache) get(id string) (Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	c.tick++
	e.atime = c.tick
	return e.handle, true
}

func (c *handleCache) set(id string, h Handle) {
	c.store(id, h, false)
}

// pin stores h under id and exempts it from eviction.
func (c *handleCache) pin(id string, h Handle) {
	c.store(id, h, true)
}

func (c *handleCache) store(id string, h Handle, pinned bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if old, ok := c.entries[id]; ok && old.pinned {
		pinned = true
	}
	c.entries[id] = &cacheEntry{handle: h, atime: c.tick, pinned: pinned}
	if c.softLimit > 0 && c.evictable() > c.softLimit {
		c.evictOldest()
	}
}

// evictable counts the unpinned entries. Caller must hold c.mu.
func (c *handleCache) evictable() int {
	n := 0
	for _, e := range c.entries {
		if !e.pinned {
			n++
		}
	}
	return n
}

func (c *handleCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest removes unpinned entries until they are at 3/4 of the limit.
// Caller must hold c.mu.
func (c *handleCache) evictOldest() {
	target := c.softLimit * 3 / 4
	if target < 1 {
		target = 1
	}
	toEvict := c.evictable() - target
	if toEvict <= 0 {
		return
	}

	type aged struct {
		id    string
		atime int64
	}
	all := make([]aged, 0, len(c.entries))
	for id, e := range c.entries {
		if e.pinned {
			continue
		}
		all = append(all, aged{id: id, atime: e.atime})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].atime < all[j].atime })
	for i := 0; i < toEvict; i++ {
		delete(c.entries, all[i].id)
	}
}
