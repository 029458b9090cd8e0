// Package trie provides a generic PATRICIA trie, an ordered mapping from
// bit-string keys to values.
//
// PATRICIA (Practical Algorithm To Retrieve Information Coded In
// Alphanumeric) is a compressed radix tree that stores a key in every node
// instead of keeping empty internal nodes. Each node tests a single bit of
// the lookup key; descent terminates when it crosses an uplink, an edge
// pointing back at an ancestor. All operations run in O(K) where K is the
// bit length of the largest key in the trie, and every bit decision flows
// through the key.Analyzer the trie was built with.
//
// Beyond the usual ordered-map surface the trie supports nearest-neighbour
// selection under a bitwise XOR metric (Select), live views over all keys
// matching a bit prefix (PrefixView) and live views bounded by two key
// endpoints (RangeView).
//
// A Trie is not safe for concurrent use. It is owned by a single writer;
// iterators detect mutations made behind their back and fail with
// ErrConcurrentModification.
package trie

import (
	"fmt"
	"strings"

	"github.com/plprobelab/go-patricia/key"
)

// Trie is a PATRICIA trie keyed by K with values of type V. The zero value
// is not usable; construct with New.
type Trie[K, V any] struct {
	analyzer key.Analyzer[K]
	root     *node[K, V]
	size     int

	// modCount increments on every mutation so iterators can fail fast.
	modCount int
}

// New constructs an empty trie that inspects keys through the given
// analyzer. The analyzer must be stateless, or at least must not change for
// the lifetime of the trie.
func New[K, V any](analyzer key.Analyzer[K]) *Trie[K, V] {
	if analyzer == nil {
		panic("trie: nil analyzer")
	}
	t := &Trie[K, V]{analyzer: analyzer}
	t.root = newRoot[K, V]()
	return t
}

func newRoot[K, V any]() *node[K, V] {
	var zeroK K
	var zeroV V
	r := &node[K, V]{key: zeroK, value: zeroV, empty: true, bitIndex: -1}
	r.left = r
	r.predecessor = r
	return r
}

// Analyzer returns the analyzer the trie was constructed with. Its Compare
// is the comparator the trie's iteration order follows.
func (t *Trie[K, V]) Analyzer() key.Analyzer[K] {
	return t.analyzer
}

// Size returns the number of entries in the trie.
func (t *Trie[K, V]) Size() int {
	return t.size
}

// IsEmpty reports whether the trie holds no entries.
func (t *Trie[K, V]) IsEmpty() bool {
	return t.size == 0
}

// Clear removes all entries.
func (t *Trie[K, V]) Clear() {
	var zeroK K
	var zeroV V
	t.root.key = zeroK
	t.root.value = zeroV
	t.root.empty = true
	t.root.bitIndex = -1
	t.root.parent = nil
	t.root.left = t.root
	t.root.right = nil
	t.root.predecessor = t.root

	t.size = 0
	t.incrementModCount()
}

func (t *Trie[K, V]) incrementSize() {
	t.size++
	t.incrementModCount()
}

func (t *Trie[K, V]) decrementSize() {
	t.size--
	t.incrementModCount()
}

func (t *Trie[K, V]) incrementModCount() {
	t.modCount++
}

// Put adds the key/value pair, replacing any existing value for the key.
// It returns the previous value and whether one was replaced.
func (t *Trie[K, V]) Put(k K, v V) (V, bool) {
	lengthInBits := t.analyzer.LengthInBits(k)

	// The only place to store a key with no meaningful bits is the root.
	if lengthInBits == 0 {
		if t.root.empty {
			t.incrementSize()
		} else {
			t.incrementModCount()
		}
		return t.root.setKeyValue(k, v)
	}

	found := t.nearest(k, lengthInBits)
	if !found.empty && t.equalKeys(k, found.key) {
		t.incrementModCount()
		return found.setKeyValue(k, v)
	}

	bitIndex := t.analyzer.BitIndex(k, 0, lengthInBits, found.key, 0, t.lengthOf(found))
	switch {
	case bitIndex >= 0:
		t.addNode(newNode(k, v, bitIndex), lengthInBits)
		t.incrementSize()
		var zero V
		return zero, false

	case bitIndex == key.NullBitKey:
		// All meaningful bits of the key are zero; it lives at the root.
		if t.root.empty {
			t.incrementSize()
		} else {
			t.incrementModCount()
		}
		return t.root.setKeyValue(k, v)

	case bitIndex == key.EqualBitKey:
		if found != t.root {
			t.incrementModCount()
			return found.setKeyValue(k, v)
		}
	}

	panic(fmt.Sprintf("trie: analyzer returned inconsistent bit index %d during put", bitIndex))
}

// addNode splices a freshly created node into the trie. The insertion point
// is the first node on the key's path whose bit index is at or past the new
// node's discriminating bit, or the first uplink crossed.
func (t *Trie[K, V]) addNode(toAdd *node[K, V], lengthInBits int) {
	current := t.root.left
	path := t.root
	for {
		if current.bitIndex >= toAdd.bitIndex || current.bitIndex <= path.bitIndex {
			toAdd.predecessor = toAdd

			if !t.analyzer.IsBitSet(toAdd.key, toAdd.bitIndex, lengthInBits) {
				toAdd.left = toAdd
				toAdd.right = current
			} else {
				toAdd.left = current
				toAdd.right = toAdd
			}

			toAdd.parent = path
			if current.bitIndex >= toAdd.bitIndex {
				current.parent = toAdd
			}

			// The displaced edge was an uplink; it now terminates at toAdd.
			if current.bitIndex <= path.bitIndex {
				current.predecessor = toAdd
			}

			if path == t.root || !t.analyzer.IsBitSet(toAdd.key, path.bitIndex, lengthInBits) {
				path.left = toAdd
			} else {
				path.right = toAdd
			}
			return
		}

		path = current
		if !t.analyzer.IsBitSet(toAdd.key, current.bitIndex, lengthInBits) {
			current = current.left
		} else {
			current = current.right
		}
	}
}

// Get returns the value stored for the key.
func (t *Trie[K, V]) Get(k K) (V, bool) {
	if n := t.getNode(k); n != nil {
		return n.value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether the trie holds the key.
func (t *Trie[K, V]) Contains(k K) bool {
	return t.getNode(k) != nil
}

func (t *Trie[K, V]) getNode(k K) *node[K, V] {
	lengthInBits := t.analyzer.LengthInBits(k)
	found := t.nearest(k, lengthInBits)
	if !found.empty && t.equalKeys(k, found.key) {
		return found
	}
	return nil
}

// nearest descends toward the key and returns the node the first uplink on
// the path points at. The result either holds the key exactly or is the
// node the discriminating bit will be computed against. It may be the root,
// including the root in its empty state.
func (t *Trie[K, V]) nearest(k K, lengthInBits int) *node[K, V] {
	current := t.root.left
	path := t.root
	for {
		if current.bitIndex <= path.bitIndex {
			return current
		}

		path = current
		if !t.analyzer.IsBitSet(k, current.bitIndex, lengthInBits) {
			current = current.left
		} else {
			current = current.right
		}
	}
}

// Remove removes the key and returns its value.
func (t *Trie[K, V]) Remove(k K) (V, bool) {
	lengthInBits := t.analyzer.LengthInBits(k)
	current := t.root.left
	path := t.root
	for {
		if current.bitIndex <= path.bitIndex {
			if !current.empty && t.equalKeys(k, current.key) {
				return t.removeNode(current), true
			}
			var zero V
			return zero, false
		}

		path = current
		if !t.analyzer.IsBitSet(k, current.bitIndex, lengthInBits) {
			current = current.left
		} else {
			current = current.right
		}
	}
}

// removeNode detaches h from the trie and returns its value. External nodes
// (one child loops back to the node) are spliced out directly; internal
// nodes are replaced by their predecessor.
func (t *Trie[K, V]) removeNode(h *node[K, V]) V {
	if h != t.root {
		if h.isInternal() {
			t.removeInternalNode(h)
		} else {
			t.removeExternalNode(h)
		}
	}
	t.decrementSize()
	return h.clear()
}

func (t *Trie[K, V]) removeExternalNode(h *node[K, V]) {
	parent := h.parent
	child := h.right
	if h.left != h {
		child = h.left
	}

	if parent.left == h {
		parent.left = child
	} else {
		parent.right = child
	}

	// Either the child keeps a real parent or the edge becomes an uplink.
	if child.bitIndex > parent.bitIndex {
		child.parent = parent
	} else {
		child.predecessor = parent
	}
}

func (t *Trie[K, V]) removeInternalNode(h *node[K, V]) {
	// p takes h's place in the trie.
	p := h.predecessor

	p.bitIndex = h.bitIndex

	// Detach p from its current spot.
	{
		parent := p.parent
		child := p.right
		if p.left != h {
			child = p.left
		}

		// If p was looping to itself it will now be uplinked from its
		// parent, unless that parent is the node being removed, in which
		// case the self-loop survives the splice below.
		if p.predecessor == p && p.parent != h {
			p.predecessor = p.parent
		}

		if parent.left == p {
			parent.left = child
		} else {
			parent.right = child
		}

		if child.bitIndex > parent.bitIndex {
			child.parent = parent
		}
	}

	// Point h's neighbourhood at p.
	{
		if h.left.parent == h {
			h.left.parent = p
		}
		if h.right.parent == h {
			h.right.parent = p
		}

		if h.parent.left == h {
			h.parent.left = p
		} else {
			h.parent.right = p
		}
	}

	p.parent = h.parent
	p.left = h.left
	p.right = h.right

	// Uplinks that terminated at h now terminate at p, including an uplink
	// to the empty root.
	if p.left.bitIndex <= p.bitIndex {
		p.left.predecessor = p
	}
	if p.right.bitIndex <= p.bitIndex {
		p.right.predecessor = p
	}
}

// lengthOf returns the bit length of a node's key, zero for the empty root.
func (t *Trie[K, V]) lengthOf(n *node[K, V]) int {
	if n.empty {
		return 0
	}
	return t.analyzer.LengthInBits(n.key)
}

func (t *Trie[K, V]) equalKeys(a, b K) bool {
	return t.analyzer.Compare(a, b) == 0
}

// String renders the trie's entries in iteration order, for debugging.
func (t *Trie[K, V]) String() string {
	b := new(strings.Builder)
	fmt.Fprintf(b, "Trie[%d]={\n", t.size)
	for n := t.firstNode(); n != nil; n = t.nextEntry(n) {
		fmt.Fprintf(b, "  %v=%v\n", n.key, n.value)
	}
	b.WriteString("}\n")
	return b.String()
}
