package trie

// Decision tells a traversal what to do after visiting an entry.
type Decision int

const (
	// Continue proceeds to the next entry.
	Continue Decision = iota

	// Exit stops the traversal; the visited entry is the result.
	Exit

	// Remove removes the visited entry and continues. Not every operation
	// supports Remove; Select rejects it.
	Remove

	// RemoveAndExit removes the visited entry and stops; the traversal
	// returns a detached copy of the removed entry.
	RemoveAndExit
)

// Cursor decides, entry by entry, how a traversal proceeds.
type Cursor[K, V any] func(Entry[K, V]) Decision

// Traverse walks the trie in lexicographical bit order, calling the cursor
// on each entry. It returns the entry the cursor stopped on, or false if
// the cursor continued to the end. All four decisions are honoured.
func (t *Trie[K, V]) Traverse(cursor Cursor[K, V]) (Entry[K, V], bool) {
	n := t.nextEntry(nil)
	for n != nil {
		current := n

		decision := cursor(current.entry())
		n = t.nextEntry(current)

		switch decision {
		case Exit:
			return current.entry(), true
		case Remove:
			t.removeNode(current)
		case RemoveAndExit:
			removed := current.entry()
			t.removeNode(current)
			return removed, true
		case Continue:
			// keep walking
		}
	}

	var zero Entry[K, V]
	return zero, false
}
