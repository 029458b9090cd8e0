package trie

import "errors"

var (
	// ErrConcurrentModification is reported by an iterator that detected a
	// mutation made through any channel other than its own Remove.
	ErrConcurrentModification = errors.New("trie: concurrent modification detected")

	// ErrNoCurrentEntry is returned by Iterator.Remove when there is no
	// current entry, either because Next was never called or because the
	// entry was already removed.
	ErrNoCurrentEntry = errors.New("trie: iterator has no current entry")

	// ErrRemoveDuringSelect is returned when a cursor answers Remove
	// during an XOR select, which is a read-only walk.
	ErrRemoveDuringSelect = errors.New("trie: cursor cannot remove during select")

	// ErrKeyOutsideRange is returned by a view's Put for a key outside
	// the view's bounds.
	ErrKeyOutsideRange = errors.New("trie: key outside view range")

	// ErrPrefixOutOfBounds is returned when a prefix view is requested
	// over a bit range that extends past the prefix key's length.
	ErrPrefixOutOfBounds = errors.New("trie: prefix offset and length exceed key length")

	// ErrEmptyPrefix is returned when a prefix view is requested over a
	// zero-bit range.
	ErrEmptyPrefix = errors.New("trie: prefix range is empty")

	// ErrNoRangeBound is returned when a range view is requested with
	// neither a lower nor an upper bound.
	ErrNoRangeBound = errors.New("trie: range view requires at least one bound")

	// ErrInvertedRange is returned when a range view's lower bound sorts
	// after its upper bound.
	ErrInvertedRange = errors.New("trie: range bounds are inverted")
)
