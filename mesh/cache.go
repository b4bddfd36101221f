package mesh

import (
	"sync"
	"sync/atomic"
)

// Glyph cache configuration.
const (
	// glyphShardCount must be a power of 2 for masking.
	glyphShardCount = 16
	glyphShardMask  = glyphShardCount - 1

	// DefaultGlyphCapacity is the default number of meshes per shard.
	DefaultGlyphCapacity = 256
)

// glyphKey identifies a glyph of a registered font.
type glyphKey struct {
	font  uint32
	glyph uint16
}

func (k glyphKey) hash() uint64 {
	// 64-bit mix so consecutive glyph IDs spread across shards.
	h := uint64(k.font)<<16 | uint64(k.glyph)
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return h
}

// glyphCache is a sharded LRU of glyph meshes in unscaled outline space.
type glyphCache struct {
	shards   [glyphShardCount]glyphShard
	capacity int

	hits   atomic.Uint64
	misses atomic.Uint64
}

type glyphShard struct {
	mu      sync.Mutex
	entries map[glyphKey]*glyphNode
	head    *glyphNode // most recently used
	tail    *glyphNode
}

type glyphNode struct {
	key        glyphKey
	glyph      cachedGlyph
	prev, next *glyphNode
}

func newGlyphCache(capacity int) *glyphCache {
	if capacity <= 0 {
		capacity = DefaultGlyphCapacity
	}
	c := &glyphCache{capacity: capacity}
	for i := range c.shards {
		c.shards[i].entries = make(map[glyphKey]*glyphNode)
	}
	return c
}

func (c *glyphCache) shard(k glyphKey) *glyphShard {
	return &c.shards[k.hash()&glyphShardMask]
}

// getOrCreate returns the cached mesh for k or builds it with create. The
// shard stays locked while create runs so a glyph is tessellated once.
func (c *glyphCache) getOrCreate(k glyphKey, create func() cachedGlyph) cachedGlyph {
	s := c.shard(k)
	s.mu.Lock()
	defer s.mu.Unlock()

	if n, ok := s.entries[k]; ok {
		s.moveToFront(n)
		c.hits.Add(1)
		return n.glyph
	}
	c.misses.Add(1)

	m := create()
	for len(s.entries) >= c.capacity && s.tail != nil {
		old := s.tail
		s.unlink(old)
		delete(s.entries, old.key)
	}
	n := &glyphNode{key: k, glyph: m}
	s.pushFront(n)
	s.entries[k] = n
	return m
}

func (c *glyphCache) len() int {
	total := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

func (s *glyphShard) pushFront(n *glyphNode) {
	n.prev = nil
	n.next = s.head
	if s.head != nil {
		s.head.prev = n
	}
	s.head = n
	if s.tail == nil {
		s.tail = n
	}
}

func (s *glyphShard) moveToFront(n *glyphNode) {
	if n == s.head {
		return
	}
	s.unlink(n)
	s.pushFront(n)
}

func (s *glyphShard) unlink(n *glyphNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		s.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
