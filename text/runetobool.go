package text

import "sync"

// runeSet is a sparse set of runes, one bit per rune, allocated in blocks of
// 256 runes on first use. It records characters no fallback font can render.
//
// runeSet is safe for concurrent use and must not be copied.
type runeSet struct {
	mu     sync.RWMutex
	blocks map[uint32]*runeBlock // keyed by rune >> 8
	n      int
}

// runeBlock holds one bit per rune of a 256-rune range.
type runeBlock struct {
	bits [4]uint64
}

func newRuneSet() *runeSet {
	return &runeSet{blocks: make(map[uint32]*runeBlock)}
}

// has reports whether r is in the set.
func (s *runeSet) has(r rune) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blocks[uint32(r)>>8]
	if !ok {
		return false
	}
	i := uint32(r) & 0xFF
	return b.bits[i/64]&(1<<(i%64)) != 0
}

// add puts r in the set.
func (s *runeSet) add(r rune) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := uint32(r) >> 8
	b, ok := s.blocks[key]
	if !ok {
		b = &runeBlock{}
		s.blocks[key] = b
	}
	i := uint32(r) & 0xFF
	if b.bits[i/64]&(1<<(i%64)) == 0 {
		b.bits[i/64] |= 1 << (i % 64)
		s.n++
	}
}

// len returns the number of runes in the set.
func (s *runeSet) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.n
}

// clear empties the set.
func (s *runeSet) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = make(map[uint32]*runeBlock)
	s.n = 0
}
