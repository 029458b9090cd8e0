package trie

import "iter"

// RangeView is a live sub-mapping bounded by two key endpoints, each
// independently inclusive or exclusive and each optional. It does not copy
// entries: mutations of the trie are visible through the view and vice
// versa.
type RangeView[K, V any] struct {
	t *Trie[K, V]

	fromKey       K
	toKey         K
	hasFrom       bool
	hasTo         bool
	fromInclusive bool
	toInclusive   bool

	// size cache, rebuilt whenever the trie's modCount moves
	sizeValid        bool
	expectedModCount int
	size             int
}

// RangeView returns a live view over all entries with keys between from and
// to. A nil bound leaves that end open; at least one bound is required, and
// from must not sort after to.
func (t *Trie[K, V]) RangeView(from *K, fromInclusive bool, to *K, toInclusive bool) (*RangeView[K, V], error) {
	if from == nil && to == nil {
		return nil, ErrNoRangeBound
	}
	if from != nil && to != nil && t.analyzer.Compare(*from, *to) > 0 {
		return nil, ErrInvertedRange
	}

	m := &RangeView[K, V]{
		t:             t,
		fromInclusive: fromInclusive,
		toInclusive:   toInclusive,
	}
	if from != nil {
		m.fromKey = *from
		m.hasFrom = true
	}
	if to != nil {
		m.toKey = *to
		m.hasTo = true
	}
	return m, nil
}

// HeadView returns a live view over all entries with keys strictly before
// to.
func (t *Trie[K, V]) HeadView(to K) *RangeView[K, V] {
	return &RangeView[K, V]{t: t, toKey: to, hasTo: true}
}

// TailView returns a live view over all entries with keys at or after from.
func (t *Trie[K, V]) TailView(from K) *RangeView[K, V] {
	return &RangeView[K, V]{t: t, fromKey: from, hasFrom: true, fromInclusive: true}
}

// SubView returns a live view over all entries with keys in [from, to).
func (t *Trie[K, V]) SubView(from, to K) (*RangeView[K, V], error) {
	return t.RangeView(&from, true, &to, false)
}

func (m *RangeView[K, V]) inFromRange(k K, forceInclusive bool) bool {
	c := m.t.analyzer.Compare(k, m.fromKey)
	if m.fromInclusive || forceInclusive {
		return c >= 0
	}
	return c > 0
}

func (m *RangeView[K, V]) inToRange(k K, forceInclusive bool) bool {
	c := m.t.analyzer.Compare(k, m.toKey)
	if m.toInclusive || forceInclusive {
		return c <= 0
	}
	return c < 0
}

func (m *RangeView[K, V]) inRange(k K) bool {
	return (!m.hasFrom || m.inFromRange(k, false)) && (!m.hasTo || m.inToRange(k, false))
}

// inBoundRange admits the high endpoint itself, for validating sub-view
// bounds.
func (m *RangeView[K, V]) inBoundRange(k K) bool {
	return (!m.hasFrom || m.inFromRange(k, false)) && (!m.hasTo || m.inToRange(k, true))
}

// SubView returns a view over [from, to) nested inside this one. Bounds
// outside the parent view are rejected with ErrKeyOutsideRange.
func (m *RangeView[K, V]) SubView(from, to K) (*RangeView[K, V], error) {
	if !m.inBoundRange(from) || !m.inBoundRange(to) {
		return nil, ErrKeyOutsideRange
	}
	return m.t.RangeView(&from, true, &to, false)
}

// FirstKey returns the smallest key in the view.
func (m *RangeView[K, V]) FirstKey() (K, bool) {
	var e *node[K, V]
	switch {
	case !m.hasFrom:
		e = m.t.firstNode()
	case m.fromInclusive:
		e = m.t.ceilingNode(m.fromKey)
	default:
		e = m.t.higherNode(m.fromKey)
	}

	if e == nil || (m.hasTo && !m.inToRange(e.key, false)) {
		var zero K
		return zero, false
	}
	return e.key, true
}

// LastKey returns the largest key in the view.
func (m *RangeView[K, V]) LastKey() (K, bool) {
	var e *node[K, V]
	switch {
	case !m.hasTo:
		e = m.t.lastNode()
	case m.toInclusive:
		e = m.t.floorNode(m.toKey)
	default:
		e = m.t.lowerNode(m.toKey)
	}

	if e == nil || (m.hasFrom && !m.inFromRange(e.key, false)) {
		var zero K
		return zero, false
	}
	return e.key, true
}

// Size returns the number of entries inside the view's bounds.
func (m *RangeView[K, V]) Size() int {
	if m.sizeValid && m.expectedModCount == m.t.modCount {
		return m.size
	}

	m.size = 0
	for it := m.Iterate(); it.Next(); {
		m.size++
	}
	m.expectedModCount = m.t.modCount
	m.sizeValid = true
	return m.size
}

// IsEmpty reports whether the view holds no entries.
func (m *RangeView[K, V]) IsEmpty() bool {
	return m.Size() == 0
}

// Get returns the value for a key inside the view; keys outside the bounds
// report absent.
func (m *RangeView[K, V]) Get(k K) (V, bool) {
	if !m.inRange(k) {
		var zero V
		return zero, false
	}
	return m.t.Get(k)
}

// Contains reports whether the view holds the key.
func (m *RangeView[K, V]) Contains(k K) bool {
	return m.inRange(k) && m.t.Contains(k)
}

// Put stores the pair through the view. Keys outside the bounds are
// rejected with ErrKeyOutsideRange.
func (m *RangeView[K, V]) Put(k K, v V) error {
	if !m.inRange(k) {
		return ErrKeyOutsideRange
	}
	m.t.Put(k, v)
	return nil
}

// Remove removes a key inside the view; keys outside the bounds are left
// alone.
func (m *RangeView[K, V]) Remove(k K) (V, bool) {
	if !m.inRange(k) {
		var zero V
		return zero, false
	}
	return m.t.Remove(k)
}

// Iterate returns an iterator over the view's entries in bit order. The
// iteration starts at the first entry inside the lower bound (the trie's
// first entry when there is none) and stops at the excluded key, the first
// stored key outside the upper bound.
func (m *RangeView[K, V]) Iterate() *Iterator[K, V] {
	it := &Iterator[K, V]{
		t:                m.t,
		expectedModCount: m.t.modCount,
	}

	switch {
	case !m.hasFrom:
		it.next = m.t.firstNode()
	case m.fromInclusive:
		it.next = m.t.ceilingNode(m.fromKey)
	default:
		it.next = m.t.higherNode(m.fromKey)
	}

	if m.hasTo {
		var excluded *node[K, V]
		if m.toInclusive {
			excluded = m.t.higherNode(m.toKey)
		} else {
			excluded = m.t.ceilingNode(m.toKey)
		}
		if excluded != nil {
			it.excluded = excluded.key
			it.hasExcluded = true
		}
	}
	return it
}

// All returns a range-over-func iterator over the view. It panics with
// ErrConcurrentModification if the trie is mutated during the iteration.
func (m *RangeView[K, V]) All() iter.Seq2[K, V] {
	return allOf(m.Iterate)
}
