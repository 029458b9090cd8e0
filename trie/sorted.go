package trie

import (
	"fmt"

	"github.com/plprobelab/go-patricia/key"
)

// CeilingEntry returns the entry with the least key greater than or equal
// to k.
func (t *Trie[K, V]) CeilingEntry(k K) (Entry[K, V], bool) {
	return entryOf(t.ceilingNode(k))
}

// HigherEntry returns the entry with the least key strictly greater than k.
func (t *Trie[K, V]) HigherEntry(k K) (Entry[K, V], bool) {
	return entryOf(t.higherNode(k))
}

// FloorEntry returns the entry with the greatest key less than or equal
// to k.
func (t *Trie[K, V]) FloorEntry(k K) (Entry[K, V], bool) {
	return entryOf(t.floorNode(k))
}

// LowerEntry returns the entry with the greatest key strictly less than k.
func (t *Trie[K, V]) LowerEntry(k K) (Entry[K, V], bool) {
	return entryOf(t.lowerNode(k))
}

// The neighbour lookups follow the steps of adding the key, but instead of
// keeping the new node they read off its ordered neighbour and take the
// node out again, rolling the modification counter back so the operation is
// externally invisible.

func (t *Trie[K, V]) ceilingNode(k K) *node[K, V] {
	lengthInBits := t.analyzer.LengthInBits(k)

	if lengthInBits == 0 {
		if !t.root.empty {
			return t.root
		}
		return t.firstNode()
	}

	found := t.nearest(k, lengthInBits)
	if !found.empty && t.equalKeys(k, found.key) {
		return found
	}

	bitIndex := t.analyzer.BitIndex(k, 0, lengthInBits, found.key, 0, t.lengthOf(found))
	switch {
	case bitIndex >= 0:
		var zero V
		added := newNode(k, zero, bitIndex)
		t.addNode(added, lengthInBits)
		t.incrementSize() // removeNode decrements it again
		ceil := t.nextEntry(added)
		t.removeNode(added)
		t.modCount -= 2
		return ceil

	case bitIndex == key.NullBitKey:
		if !t.root.empty {
			return t.root
		}
		return t.firstNode()

	case bitIndex == key.EqualBitKey:
		return found
	}

	panic(fmt.Sprintf("trie: analyzer returned inconsistent bit index %d during ceiling", bitIndex))
}

func (t *Trie[K, V]) higherNode(k K) *node[K, V] {
	lengthInBits := t.analyzer.LengthInBits(k)

	if lengthInBits == 0 {
		if !t.root.empty {
			// Data at the root; anything after it?
			if t.size > 1 {
				return t.nextEntry(t.root)
			}
			return nil
		}
		return t.firstNode()
	}

	found := t.nearest(k, lengthInBits)
	if !found.empty && t.equalKeys(k, found.key) {
		return t.nextEntry(found)
	}

	bitIndex := t.analyzer.BitIndex(k, 0, lengthInBits, found.key, 0, t.lengthOf(found))
	switch {
	case bitIndex >= 0:
		var zero V
		added := newNode(k, zero, bitIndex)
		t.addNode(added, lengthInBits)
		t.incrementSize() // removeNode decrements it again
		ceil := t.nextEntry(added)
		t.removeNode(added)
		t.modCount -= 2
		return ceil

	case bitIndex == key.NullBitKey:
		if !t.root.empty {
			return t.firstNode()
		}
		if t.size > 1 {
			return t.nextEntry(t.firstNode())
		}
		return nil

	case bitIndex == key.EqualBitKey:
		return t.nextEntry(found)
	}

	panic(fmt.Sprintf("trie: analyzer returned inconsistent bit index %d during higher", bitIndex))
}

func (t *Trie[K, V]) floorNode(k K) *node[K, V] {
	lengthInBits := t.analyzer.LengthInBits(k)

	if lengthInBits == 0 {
		if !t.root.empty {
			return t.root
		}
		return nil
	}

	found := t.nearest(k, lengthInBits)
	if !found.empty && t.equalKeys(k, found.key) {
		return found
	}

	bitIndex := t.analyzer.BitIndex(k, 0, lengthInBits, found.key, 0, t.lengthOf(found))
	switch {
	case bitIndex >= 0:
		var zero V
		added := newNode(k, zero, bitIndex)
		t.addNode(added, lengthInBits)
		t.incrementSize() // removeNode decrements it again
		floor := t.previousEntry(added)
		t.removeNode(added)
		t.modCount -= 2
		return floor

	case bitIndex == key.NullBitKey:
		if !t.root.empty {
			return t.root
		}
		return nil

	case bitIndex == key.EqualBitKey:
		return found
	}

	panic(fmt.Sprintf("trie: analyzer returned inconsistent bit index %d during floor", bitIndex))
}

func (t *Trie[K, V]) lowerNode(k K) *node[K, V] {
	lengthInBits := t.analyzer.LengthInBits(k)

	if lengthInBits == 0 {
		// Nothing sorts before the root.
		return nil
	}

	found := t.nearest(k, lengthInBits)
	if !found.empty && t.equalKeys(k, found.key) {
		return t.previousEntry(found)
	}

	bitIndex := t.analyzer.BitIndex(k, 0, lengthInBits, found.key, 0, t.lengthOf(found))
	switch {
	case bitIndex >= 0:
		var zero V
		added := newNode(k, zero, bitIndex)
		t.addNode(added, lengthInBits)
		t.incrementSize() // removeNode decrements it again
		prior := t.previousEntry(added)
		t.removeNode(added)
		t.modCount -= 2
		return prior

	case bitIndex == key.NullBitKey:
		return nil

	case bitIndex == key.EqualBitKey:
		return t.previousEntry(found)
	}

	panic(fmt.Sprintf("trie: analyzer returned inconsistent bit index %d during lower", bitIndex))
}

// subtree locates the node rooting the smallest subtree that spans every
// key matching the given bit prefix, or nil when no stored key matches.
func (t *Trie[K, V]) subtree(prefix K, offsetInBits, lengthInBits int) *node[K, V] {
	current := t.root.left
	path := t.root
	for {
		if current.bitIndex <= path.bitIndex || lengthInBits <= current.bitIndex {
			break
		}

		path = current
		if !t.analyzer.IsBitSet(prefix, offsetInBits+current.bitIndex, offsetInBits+lengthInBits) {
			current = current.left
		} else {
			current = current.right
		}
	}

	candidate := current
	if candidate.empty {
		candidate = path
	}
	if candidate.empty {
		return nil
	}

	endInBits := offsetInBits + lengthInBits

	// A root key shorter than the prefix cannot match it; without this an
	// empty-string root would swallow any prefix of zero bits.
	if candidate == t.root && t.lengthOf(candidate) < endInBits {
		return nil
	}

	// The bit just inside the prefix boundary must agree.
	if t.analyzer.IsBitSet(prefix, endInBits-1, endInBits) !=
		t.analyzer.IsBitSet(candidate.key, lengthInBits-1, t.lengthOf(candidate)) {
		return nil
	}

	// And the candidate must share at least lengthInBits bits with the
	// prefix.
	bitIndex := t.analyzer.BitIndex(prefix, offsetInBits, lengthInBits, candidate.key, 0, t.lengthOf(candidate))
	if bitIndex >= 0 && bitIndex < lengthInBits {
		return nil
	}

	return candidate
}
