package trie

// Select returns the entry whose key is closest to k under the bitwise XOR
// metric: the entry reached by following k's bits down the trie and backing
// off as little as possible. This is proximity, not prefix matching, and it
// is not lexicographic closeness. On a non-empty trie it always returns an
// entry.
func (t *Trie[K, V]) Select(k K) (Entry[K, V], bool) {
	lengthInBits := t.analyzer.LengthInBits(k)
	var found *node[K, V]
	if !t.selectR(t.root.left, -1, k, lengthInBits, &found) && found != nil {
		return found.entry(), true
	}
	var zero Entry[K, V]
	return zero, false
}

// SelectKey is like Select but returns only the matched key.
func (t *Trie[K, V]) SelectKey(k K) (K, bool) {
	e, ok := t.Select(k)
	return e.Key, ok
}

// SelectValue is like Select but returns only the matched value.
func (t *Trie[K, V]) SelectValue(k K) (V, bool) {
	e, ok := t.Select(k)
	return e.Value, ok
}

// selectR descends on the side of each node indicated by the query key's
// bit; when that side comes back empty-handed it also tries the other side.
// The recursion terminates at the first reachable uplink target, which is
// the best match. It returns true while the search should continue.
func (t *Trie[K, V]) selectR(h *node[K, V], bitIndex int, k K, lengthInBits int, found **node[K, V]) bool {
	if h.bitIndex <= bitIndex {
		// An empty root forces the search to back off and look for an
		// alternative best match.
		if !h.empty {
			*found = h
			return false
		}
		return true
	}

	if !t.analyzer.IsBitSet(k, h.bitIndex, lengthInBits) {
		if t.selectR(h.left, h.bitIndex, k, lengthInBits, found) {
			return t.selectR(h.right, h.bitIndex, k, lengthInBits, found)
		}
	} else {
		if t.selectR(h.right, h.bitIndex, k, lengthInBits, found) {
			return t.selectR(h.left, h.bitIndex, k, lengthInBits, found)
		}
	}
	return false
}

// SelectWith visits entries in order of XOR closeness to k, calling the
// cursor on each until it decides to stop. The Remove decision is rejected
// with ErrRemoveDuringSelect because the XOR walk cannot survive a
// mutation; use Traverse to remove while iterating. RemoveAndExit removes
// the entry and returns its detached copy.
func (t *Trie[K, V]) SelectWith(k K, cursor Cursor[K, V]) (Entry[K, V], bool, error) {
	lengthInBits := t.analyzer.LengthInBits(k)
	var result *Entry[K, V]
	_, err := t.selectC(t.root.left, -1, k, lengthInBits, cursor, &result)
	if err != nil {
		var zero Entry[K, V]
		return zero, false, err
	}
	if result != nil {
		return *result, true, nil
	}
	var zero Entry[K, V]
	return zero, false, nil
}

func (t *Trie[K, V]) selectC(h *node[K, V], bitIndex int, k K, lengthInBits int,
	cursor Cursor[K, V], result **Entry[K, V]) (bool, error) {

	if h.bitIndex <= bitIndex {
		if !h.empty {
			switch decision := cursor(h.entry()); decision {
			case Remove:
				return false, ErrRemoveDuringSelect
			case Exit:
				matched := h.entry()
				*result = &matched
				return false, nil
			case RemoveAndExit:
				removed := h.entry()
				*result = &removed
				t.removeNode(h)
				return false, nil
			case Continue:
				// fall through to the next closest entry
			}
		}
		return true, nil
	}

	if !t.analyzer.IsBitSet(k, h.bitIndex, lengthInBits) {
		more, err := t.selectC(h.left, h.bitIndex, k, lengthInBits, cursor, result)
		if err != nil {
			return false, err
		}
		if more {
			return t.selectC(h.right, h.bitIndex, k, lengthInBits, cursor, result)
		}
	} else {
		more, err := t.selectC(h.right, h.bitIndex, k, lengthInBits, cursor, result)
		if err != nil {
			return false, err
		}
		if more {
			return t.selectC(h.left, h.bitIndex, k, lengthInBits, cursor, result)
		}
	}
	return false, nil
}
