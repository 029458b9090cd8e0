package trie

import (
	"errors"
	"sort"
	"testing"

	"github.com/plprobelab/go-patricia/internal/trietest"
)

func TestIterate(t *testing.T) {
	tr := stringTrie()
	words := trietest.Words()
	for _, w := range words {
		tr.Put(w, w)
	}

	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.Strings(sorted)

	it := tr.Iterate()
	for _, want := range sorted {
		if !it.Next() {
			t.Fatalf("iteration ended early at %q: %v", want, it.Err())
		}
		if got := it.Entry().Key; got != want {
			t.Fatalf("entry = %q, want %q", got, want)
		}
	}
	if it.Next() {
		t.Fatalf("iteration did not end after %d entries", len(sorted))
	}
	if err := it.Err(); err != nil {
		t.Fatalf("unexpected iterator error: %v", err)
	}
}

// An iterator fails on the step following a mutation it did not make.
func TestIterateFailFast(t *testing.T) {
	tr := stringTrie()
	for _, w := range trietest.Words() {
		tr.Put(w, w)
	}

	it := tr.Iterate()
	if !it.Next() {
		t.Fatalf("expected a first entry")
	}

	tr.Put("Intruder", "x")

	if it.Next() {
		t.Fatalf("iterator survived a concurrent put")
	}
	if !errors.Is(it.Err(), ErrConcurrentModification) {
		t.Fatalf("err = %v, want ErrConcurrentModification", it.Err())
	}

	// Remove through a stale iterator is also rejected.
	if err := it.Remove(); !errors.Is(err, ErrConcurrentModification) {
		t.Fatalf("remove on stale iterator = %v", err)
	}
}

func TestIteratorRemove(t *testing.T) {
	tr := bytesTrie()
	rng := trietest.Rand(11)
	keys := trietest.RandomKeys(rng, 100, 3)
	for i, k := range keys {
		tr.Put(k, i)
	}

	// Remove every other entry through the iterator; the iterator's own
	// removals do not invalidate it.
	removed := 0
	it := tr.Iterate()
	for i := 0; it.Next(); i++ {
		if i%2 == 0 {
			if err := it.Remove(); err != nil {
				t.Fatalf("iterator remove: %v", err)
			}
			removed++
		}
	}
	if err := it.Err(); err != nil {
		t.Fatalf("iterator error: %v", err)
	}
	if tr.Size() != len(keys)-removed {
		t.Fatalf("size = %d, want %d", tr.Size(), len(keys)-removed)
	}
	checkInvariant(t, tr)
}

func TestIteratorRemoveMisuse(t *testing.T) {
	tr := bytesTrie()
	tr.Put([]byte{0x01}, 1)

	it := tr.Iterate()
	if err := it.Remove(); !errors.Is(err, ErrNoCurrentEntry) {
		t.Fatalf("remove before next = %v", err)
	}

	it.Next()
	if err := it.Remove(); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	if err := it.Remove(); !errors.Is(err, ErrNoCurrentEntry) {
		t.Fatalf("second remove = %v", err)
	}
}

func TestAll(t *testing.T) {
	tr := bytesTrie()
	keys := [][]byte{{0x01}, {0x02}, {0x03}}
	for i, k := range keys {
		tr.Put(k, i)
	}

	i := 0
	for _, v := range tr.All() {
		if v != i {
			t.Fatalf("value = %d, want %d", v, i)
		}
		i++
	}
	if i != len(keys) {
		t.Fatalf("visited %d entries, want %d", i, len(keys))
	}

	// Early break is fine.
	for range tr.All() {
		break
	}
}
