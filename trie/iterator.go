package trie

import "iter"

// Iterator walks entries in lexicographical bit order. It fails fast: a
// mutation of the trie through anything other than the iterator's own
// Remove makes the next call to Next return false with Err reporting
// ErrConcurrentModification.
//
//	it := tr.Iterate()
//	for it.Next() {
//		e := it.Entry()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Iterator[K, V any] struct {
	t                *Trie[K, V]
	expectedModCount int
	next             *node[K, V]
	current          *node[K, V]
	entry            Entry[K, V]
	err              error

	// subtree bounding, set for prefix-view iterators
	bounded      bool
	subtree      *node[K, V]
	prefix       K
	offsetInBits int
	lengthInBits int
	lastOne      bool

	// exclusion bounding, set for range-view iterators
	hasExcluded bool
	excluded    K
}

// Iterate returns an iterator over the whole trie.
func (t *Trie[K, V]) Iterate() *Iterator[K, V] {
	return &Iterator[K, V]{
		t:                t,
		expectedModCount: t.modCount,
		next:             t.firstNode(),
	}
}

// Next advances to the next entry. It returns false when the iteration is
// done or broken; Err distinguishes the two.
func (it *Iterator[K, V]) Next() bool {
	if it.err != nil {
		return false
	}
	if it.expectedModCount != it.t.modCount {
		it.err = ErrConcurrentModification
		return false
	}

	n := it.next
	if n == nil {
		return false
	}
	if it.hasExcluded && !n.empty && it.t.equalKeys(n.key, it.excluded) {
		return false
	}

	it.current = n
	it.entry = n.entry()

	if it.lastOne {
		it.next = nil
	} else {
		it.next = it.findNext(n)
	}
	return true
}

func (it *Iterator[K, V]) findNext(prior *node[K, V]) *node[K, V] {
	if it.bounded {
		return it.t.nextEntryInSubtree(prior, it.subtree)
	}
	return it.t.nextEntry(prior)
}

// Entry returns the entry the last successful Next landed on.
func (it *Iterator[K, V]) Entry() Entry[K, V] {
	return it.entry
}

// Err returns ErrConcurrentModification if the iterator detected a
// mutation, nil otherwise.
func (it *Iterator[K, V]) Err() error {
	return it.err
}

// Remove removes the current entry from the trie. The iterator stays
// valid; the trie's other iterators do not.
func (it *Iterator[K, V]) Remove() error {
	if it.current == nil {
		return ErrNoCurrentEntry
	}
	if it.err != nil {
		return it.err
	}
	if it.expectedModCount != it.t.modCount {
		it.err = ErrConcurrentModification
		return it.err
	}

	n := it.current
	it.current = nil

	// Removing the subtree root, or rewiring that changes its bit index,
	// invalidates a bounded iterator's subtree; relocate it.
	var needsFixing bool
	var subtreeBitIndex int
	if it.bounded {
		subtreeBitIndex = it.subtree.bitIndex
		needsFixing = n == it.subtree
	}

	it.t.removeNode(n)
	it.expectedModCount = it.t.modCount

	if it.bounded {
		if needsFixing || subtreeBitIndex != it.subtree.bitIndex {
			it.subtree = it.t.subtree(it.prefix, it.offsetInBits, it.lengthInBits)
		}
		switch {
		case it.subtree == nil:
			it.next = nil
		case it.lengthInBits > it.subtree.bitIndex:
			// The subtree collapsed to a single entry.
			it.lastOne = true
		}
	}
	return nil
}

// All returns a range-over-func iterator over the trie in bit order. It
// panics with ErrConcurrentModification if the trie is mutated during the
// iteration; use Iterate for the checked form.
func (t *Trie[K, V]) All() iter.Seq2[K, V] {
	return allOf(t.Iterate)
}

// Keys returns a snapshot of all keys in iteration order.
func (t *Trie[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)
	for n := t.firstNode(); n != nil; n = t.nextEntry(n) {
		keys = append(keys, n.key)
	}
	return keys
}

// Values returns a snapshot of all values in iteration order.
func (t *Trie[K, V]) Values() []V {
	values := make([]V, 0, t.size)
	for n := t.firstNode(); n != nil; n = t.nextEntry(n) {
		values = append(values, n.value)
	}
	return values
}

// Entries returns a snapshot of all entries in iteration order.
func (t *Trie[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, t.size)
	for n := t.firstNode(); n != nil; n = t.nextEntry(n) {
		entries = append(entries, n.entry())
	}
	return entries
}
