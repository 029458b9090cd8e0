package trie

import "iter"

// PrefixView is a live sub-mapping over every entry whose key bits match a
// prefix over a bit range. It does not copy entries: mutations of the trie
// are visible through the view and vice versa.
//
// Size, FirstKey and LastKey iterate the matching subtree and cache the
// result until the trie's modification counter changes; the other
// operations check prefix containment per key and delegate to the trie.
type PrefixView[K, V any] struct {
	t            *Trie[K, V]
	prefix       K
	offsetInBits int
	lengthInBits int

	// cache, rebuilt whenever the trie's modCount moves
	cacheValid       bool
	expectedModCount int
	size             int
	fromKey, toKey   K
	hasFrom, hasTo   bool
}

// PrefixView returns a live view over all entries whose key bits match the
// bits [offsetInBits, offsetInBits+lengthInBits) of the prefix key.
func (t *Trie[K, V]) PrefixView(prefix K, offsetInBits, lengthInBits int) (*PrefixView[K, V], error) {
	if offsetInBits+lengthInBits > t.analyzer.LengthInBits(prefix) {
		return nil, ErrPrefixOutOfBounds
	}
	if lengthInBits == 0 {
		return nil, ErrEmptyPrefix
	}
	return &PrefixView[K, V]{
		t:            t,
		prefix:       prefix,
		offsetInBits: offsetInBits,
		lengthInBits: lengthInBits,
	}, nil
}

// PrefixedBy returns a live view over all entries whose key starts with the
// given key's bits.
func (t *Trie[K, V]) PrefixedBy(prefix K) (*PrefixView[K, V], error) {
	return t.PrefixView(prefix, 0, t.analyzer.LengthInBits(prefix))
}

// PrefixedByElements returns a live view over all entries whose key starts
// with the first n elements of the given key, where an element spans the
// analyzer's BitsPerElement bits.
func (t *Trie[K, V]) PrefixedByElements(prefix K, n int) (*PrefixView[K, V], error) {
	return t.PrefixView(prefix, 0, n*t.analyzer.BitsPerElement())
}

// contains reports whether the key belongs to the view.
func (m *PrefixView[K, V]) contains(k K) bool {
	return m.t.analyzer.IsPrefix(m.prefix, m.offsetInBits, m.lengthInBits, k)
}

// fixup recomputes the cached size and boundary keys. fromKey is the key
// one step before the first match (absent when the first match is the
// trie's first entry), toKey the key one step after the last match.
func (m *PrefixView[K, V]) fixup() int {
	if m.cacheValid && m.expectedModCount == m.t.modCount {
		return m.size
	}

	m.size = 0
	m.hasFrom = false
	m.hasTo = false

	start := m.t.subtree(m.prefix, m.offsetInBits, m.lengthInBits)
	if start != nil {
		var first, last *node[K, V]
		if m.lengthInBits > start.bitIndex {
			first, last = start, start
			m.size = 1
		} else {
			for n := m.t.followLeft(start); n != nil; n = m.t.nextEntryInSubtree(n, start) {
				if first == nil {
					first = n
				}
				last = n
				m.size++
			}
		}

		if prior := m.t.previousEntry(first); prior != nil {
			m.fromKey = prior.key
			m.hasFrom = true
		}
		if next := m.t.nextEntry(last); next != nil {
			m.toKey = next.key
			m.hasTo = true
		}
	}

	m.expectedModCount = m.t.modCount
	m.cacheValid = true
	return m.size
}

// Size returns the number of entries matching the prefix.
func (m *PrefixView[K, V]) Size() int {
	return m.fixup()
}

// IsEmpty reports whether no entry matches the prefix.
func (m *PrefixView[K, V]) IsEmpty() bool {
	return m.Size() == 0
}

// FirstKey returns the smallest key in the view.
func (m *PrefixView[K, V]) FirstKey() (K, bool) {
	m.fixup()

	var e *node[K, V]
	if !m.hasFrom {
		e = m.t.firstNode()
	} else {
		e = m.t.higherNode(m.fromKey)
	}

	if e == nil || !m.contains(e.key) {
		var zero K
		return zero, false
	}
	return e.key, true
}

// LastKey returns the largest key in the view.
func (m *PrefixView[K, V]) LastKey() (K, bool) {
	m.fixup()

	var e *node[K, V]
	if !m.hasTo {
		e = m.t.lastNode()
	} else {
		e = m.t.lowerNode(m.toKey)
	}

	if e == nil || !m.contains(e.key) {
		var zero K
		return zero, false
	}
	return e.key, true
}

// Get returns the value for a key inside the view; keys outside the view
// report absent.
func (m *PrefixView[K, V]) Get(k K) (V, bool) {
	if !m.contains(k) {
		var zero V
		return zero, false
	}
	return m.t.Get(k)
}

// Contains reports whether the view holds the key.
func (m *PrefixView[K, V]) Contains(k K) bool {
	return m.contains(k) && m.t.Contains(k)
}

// Put stores the pair through the view. Keys that do not match the prefix
// are rejected with ErrKeyOutsideRange.
func (m *PrefixView[K, V]) Put(k K, v V) error {
	if !m.contains(k) {
		return ErrKeyOutsideRange
	}
	m.t.Put(k, v)
	return nil
}

// Remove removes a key inside the view; keys outside the view are left
// alone.
func (m *PrefixView[K, V]) Remove(k K) (V, bool) {
	if !m.contains(k) {
		var zero V
		return zero, false
	}
	return m.t.Remove(k)
}

// Iterate returns an iterator over the view's entries in bit order. The
// iterator never leaves the matching subtree; its Remove relocates the
// subtree when the removal rewired it.
func (m *PrefixView[K, V]) Iterate() *Iterator[K, V] {
	it := &Iterator[K, V]{
		t:                m.t,
		expectedModCount: m.t.modCount,
		bounded:          true,
		prefix:           m.prefix,
		offsetInBits:     m.offsetInBits,
		lengthInBits:     m.lengthInBits,
	}

	start := m.t.subtree(m.prefix, m.offsetInBits, m.lengthInBits)
	if start == nil {
		return it
	}

	it.subtree = start
	if m.lengthInBits > start.bitIndex {
		// The subtree is a single entry.
		it.next = start
		it.lastOne = true
	} else {
		it.next = m.t.followLeft(start)
	}
	return it
}

// All returns a range-over-func iterator over the view. It panics with
// ErrConcurrentModification if the trie is mutated during the iteration.
func (m *PrefixView[K, V]) All() iter.Seq2[K, V] {
	return allOf(m.Iterate)
}

func allOf[K, V any](iterate func() *Iterator[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := iterate()
		for it.Next() {
			e := it.Entry()
			if !yield(e.Key, e.Value) {
				return
			}
		}
		if it.Err() != nil {
			panic(it.Err())
		}
	}
}
