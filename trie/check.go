package trie

import "fmt"

// CheckInvariant verifies the trie's structural invariants and returns a
// description of the first discrepancy found, or nil. It is meant to be
// called from tests after every mutation.
//
// Invariants checked, with root carrying bit index -1:
//
//   - every non-root node holds a key and has a parent;
//   - for every edge n→c, either c's bit index is greater than n's and
//     c.parent == n (a downlink), or it is not and c.predecessor names the
//     uplink's source;
//   - every key-bearing non-root node is the target of exactly one uplink;
//   - iteration visits exactly Size() entries in strictly increasing
//     analyzer order.
func CheckInvariant[K, V any](t *Trie[K, V]) error {
	root := t.root
	if root.bitIndex != -1 {
		return fmt.Errorf("root has bit index %d", root.bitIndex)
	}
	if root.parent != nil {
		return fmt.Errorf("root has a parent")
	}

	uplinks := make(map[*node[K, V]]int)
	if root.left != root {
		if err := t.checkNode(root.left, root, uplinks); err != nil {
			return err
		}
	}

	// Each key-bearing non-root node is anchored by exactly one uplink.
	seen := 0
	for n := t.firstNode(); n != nil; n = t.nextEntry(n) {
		seen++
		if n == root {
			continue
		}
		if c := uplinks[n]; c != 1 {
			return fmt.Errorf("node %v is the target of %d uplinks", n.key, c)
		}
	}
	if seen != t.size {
		return fmt.Errorf("iteration visited %d entries, size is %d", seen, t.size)
	}

	// Iteration follows the analyzer's order.
	var prev *node[K, V]
	for n := t.firstNode(); n != nil; n = t.nextEntry(n) {
		if prev != nil && t.analyzer.Compare(prev.key, n.key) >= 0 {
			return fmt.Errorf("iteration out of order: %v before %v", prev.key, n.key)
		}
		prev = n
	}
	return nil
}

// checkNode validates a real (downlinked) node and recurses into its
// downlink children, recording uplink targets as it goes.
func (t *Trie[K, V]) checkNode(n, parent *node[K, V], uplinks map[*node[K, V]]int) error {
	if n.empty {
		return fmt.Errorf("non-root node at bit %d holds no key", n.bitIndex)
	}
	if n.parent != parent {
		return fmt.Errorf("node %v has a stale parent pointer", n.key)
	}
	if n.left == nil || n.right == nil {
		return fmt.Errorf("node %v has a nil child", n.key)
	}

	for _, child := range []*node[K, V]{n.left, n.right} {
		if child.bitIndex > n.bitIndex {
			if err := t.checkNode(child, n, uplinks); err != nil {
				return err
			}
			continue
		}
		// An uplink, possibly a self-loop; its target must know its
		// source. An uplink may also point at the empty root.
		if child.predecessor != n {
			return fmt.Errorf("uplink target %v does not name %v as predecessor", child.key, n.key)
		}
		if !child.empty {
			uplinks[child]++
		}
	}
	return nil
}
