package trie

// FirstEntry returns the entry with the bit-order smallest key.
func (t *Trie[K, V]) FirstEntry() (Entry[K, V], bool) {
	return entryOf(t.firstNode())
}

// LastEntry returns the entry with the bit-order largest key.
func (t *Trie[K, V]) LastEntry() (Entry[K, V], bool) {
	return entryOf(t.lastNode())
}

func entryOf[K, V any](n *node[K, V]) (Entry[K, V], bool) {
	if n == nil {
		var zero Entry[K, V]
		return zero, false
	}
	return n.entry(), true
}

// firstNode follows left edges from the root until it crosses an uplink;
// the uplink's target is the first entry.
func (t *Trie[K, V]) firstNode() *node[K, V] {
	if t.size == 0 {
		return nil
	}
	return t.followLeft(t.root)
}

func (t *Trie[K, V]) followLeft(n *node[K, V]) *node[K, V] {
	for {
		child := n.left
		// The empty root is skipped on the way down.
		if child.empty {
			child = n.right
		}

		if child.bitIndex <= n.bitIndex {
			return child
		}
		n = child
	}
}

func (t *Trie[K, V]) lastNode() *node[K, V] {
	if t.size == 0 {
		return nil
	}
	n := t.followRight(t.root.left)
	if n == nil && !t.root.empty {
		// Only the root sentinel holds a key.
		return t.root
	}
	return n
}

func (t *Trie[K, V]) followRight(n *node[K, V]) *node[K, V] {
	if n.right == nil {
		return nil
	}
	for n.right.bitIndex > n.bitIndex {
		n = n.right
	}
	return n.right
}

// nextEntry returns the node holding the key lexicographically after the
// given node's, or nil at the end.
func (t *Trie[K, V]) nextEntry(n *node[K, V]) *node[K, V] {
	if n == nil {
		return t.firstNode()
	}
	return t.nextEntryImpl(n.predecessor, n, nil)
}

// nextEntryInSubtree is like nextEntry but never leaves the subtree rooted
// at parentOfSubtree.
func (t *Trie[K, V]) nextEntryInSubtree(n, parentOfSubtree *node[K, V]) *node[K, V] {
	if n == nil {
		return t.firstNode()
	}
	return t.nextEntryImpl(n.predecessor, n, parentOfSubtree)
}

// nextEntryImpl scans for the node after previous, starting at start. The
// combination of parent links and predecessors makes a parent stack
// unnecessary. The scan proceeds in stages:
//
//  1. Walk left through downlinks, returning the first valid uplink. Skip
//     the walk when the left side was already returned.
//  2. Nothing at all in the trie: done.
//  3. Left already returned and no right child: done.
//  4. Try the right edge: a valid uplink is the answer, otherwise recurse
//     into the right subtree.
//  5. Climb parents until the current node is not its parent's right child,
//     stopping at the subtree boundary.
//  6. Use the ascended parent's right edge if it is a fresh valid uplink.
//  7. A right self-loop on the parent ends the traversal; otherwise recurse
//     into the parent's right subtree.
func (t *Trie[K, V]) nextEntryImpl(start, previous, tree *node[K, V]) *node[K, V] {
	current := start

	// Only look at the left if this was a recursive or the first check,
	// otherwise the left was already exhausted.
	if previous == nil || start != previous.predecessor {
		for !current.left.empty {
			if previous == current.left {
				break
			}
			if isValidUplink(current.left, current) {
				return current.left
			}
			current = current.left
		}
	}

	if current.empty {
		return nil
	}

	// Left already returned and the immediate right is nil: the only entry
	// is stored at the root.
	if current.right == nil {
		return nil
	}

	if previous != current.right {
		if isValidUplink(current.right, current) {
			return current.right
		}
		return t.nextEntryImpl(current.right, previous, tree)
	}

	// Neither left nor right were fresh; find the first ancestor the scan
	// did not come out of on the right.
	for current == current.parent.right {
		if current == tree {
			return nil
		}
		current = current.parent
	}

	if current == tree {
		return nil
	}

	if current.parent.right == nil {
		return nil
	}

	if previous != current.parent.right && isValidUplink(current.parent.right, current.parent) {
		return current.parent.right
	}

	// A right self-loop on the parent means the end was already returned.
	if current.parent.right == current.parent {
		return nil
	}

	return t.nextEntryImpl(current.parent.right, previous, tree)
}

// previousEntry returns the node holding the key lexicographically before
// the given node's, or nil at the beginning. It is keyed on the
// predecessor pointer: arriving through a right uplink means the answer is
// on the predecessor's left side, otherwise the scan climbs out of a chain
// of left-child positions first.
func (t *Trie[K, V]) previousEntry(start *node[K, V]) *node[K, V] {
	if start.predecessor.right == start {
		if isValidUplink(start.predecessor.left, start.predecessor) {
			return start.predecessor.left
		}
		return t.followRight(start.predecessor.left)
	}

	n := start.predecessor
	for n.parent != nil && n == n.parent.left {
		n = n.parent
	}
	if n.parent == nil {
		return nil
	}

	if isValidUplink(n.parent.left, n.parent) {
		if n.parent.left == t.root {
			if t.root.empty {
				return nil
			}
			return t.root
		}
		return n.parent.left
	}
	return t.followRight(n.parent.left)
}
