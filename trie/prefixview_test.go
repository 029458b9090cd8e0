package trie

import (
	"errors"
	"math/big"
	"testing"

	"github.com/plprobelab/go-patricia/internal/trietest"
	"github.com/plprobelab/go-patricia/key"
)

func limeTrie() *Trie[string, string] {
	tr := stringTrie()
	for _, w := range []string{"Lime", "LimeWire", "LimeRadio", "Lax", "Later", "Lake", "Lovely"} {
		tr.Put(w, w)
	}
	return tr
}

func viewKeys[K, V any](t *testing.T, view *PrefixView[K, V]) []K {
	t.Helper()
	var keys []K
	it := view.Iterate()
	for it.Next() {
		keys = append(keys, it.Entry().Key)
	}
	if err := it.Err(); err != nil {
		t.Fatalf("view iteration: %v", err)
	}
	return keys
}

func TestPrefixViewStrings(t *testing.T) {
	tr := limeTrie()

	view, err := tr.PrefixView("Lime", 0, 64)
	if err != nil {
		t.Fatalf("prefix view: %v", err)
	}

	want := []string{"Lime", "LimeRadio", "LimeWire"}
	got := viewKeys(t, view)
	if len(got) != len(want) {
		t.Fatalf("view keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("view keys = %v, want %v", got, want)
		}
	}

	if view.Size() != 3 {
		t.Fatalf("size = %d", view.Size())
	}
	if first, ok := view.FirstKey(); !ok || first != "Lime" {
		t.Fatalf("first key = %q, %v", first, ok)
	}
	if last, ok := view.LastKey(); !ok || last != "LimeWire" {
		t.Fatalf("last key = %q, %v", last, ok)
	}
}

func TestPrefixedBy(t *testing.T) {
	tr := limeTrie()

	view, err := tr.PrefixedBy("Lime")
	if err != nil {
		t.Fatalf("prefixed by: %v", err)
	}
	if view.Size() != 3 {
		t.Fatalf("size = %d", view.Size())
	}

	// "LimePlastics" cut to four elements is the same prefix.
	view, err = tr.PrefixedByElements("LimePlastics", 4)
	if err != nil {
		t.Fatalf("prefixed by elements: %v", err)
	}
	if view.Size() != 3 {
		t.Fatalf("size = %d", view.Size())
	}

	// A prefix matching nothing yields an empty view.
	view, err = tr.PrefixedBy("Quartz")
	if err != nil {
		t.Fatalf("prefixed by: %v", err)
	}
	if !view.IsEmpty() {
		t.Fatalf("view over absent prefix is not empty")
	}
	if _, ok := view.FirstKey(); ok {
		t.Fatalf("first key on empty view")
	}
}

func TestPrefixViewBounds(t *testing.T) {
	tr := limeTrie()

	if _, err := tr.PrefixView("Lime", 0, 80); !errors.Is(err, ErrPrefixOutOfBounds) {
		t.Fatalf("err = %v, want ErrPrefixOutOfBounds", err)
	}
	if _, err := tr.PrefixView("Lime", 64, 16); !errors.Is(err, ErrPrefixOutOfBounds) {
		t.Fatalf("err = %v, want ErrPrefixOutOfBounds", err)
	}
	if _, err := tr.PrefixView("Lime", 0, 0); !errors.Is(err, ErrEmptyPrefix) {
		t.Fatalf("err = %v, want ErrEmptyPrefix", err)
	}
}

func TestPrefixViewOperations(t *testing.T) {
	tr := limeTrie()

	view, err := tr.PrefixView("Lime", 0, 64)
	if err != nil {
		t.Fatalf("prefix view: %v", err)
	}

	// Reads outside the prefix report absent rather than failing.
	if _, ok := view.Get("Lovely"); ok {
		t.Fatalf("get outside prefix succeeded")
	}
	if view.Contains("Lax") {
		t.Fatalf("contains outside prefix succeeded")
	}
	if _, ok := view.Remove("Lovely"); ok {
		t.Fatalf("remove outside prefix succeeded")
	}
	if tr.Contains("Lovely") == false {
		t.Fatalf("outside key disturbed")
	}

	// Writes outside the prefix fail.
	if err := view.Put("Lava", "x"); !errors.Is(err, ErrKeyOutsideRange) {
		t.Fatalf("put outside prefix = %v", err)
	}

	// The view is live: writes through it and through the trie are both
	// visible.
	if err := view.Put("Limes", "fruit"); err != nil {
		t.Fatalf("put through view: %v", err)
	}
	if v, ok := tr.Get("Limes"); !ok || v != "fruit" {
		t.Fatalf("trie missed view put: %q, %v", v, ok)
	}
	if view.Size() != 4 {
		t.Fatalf("size after put = %d", view.Size())
	}

	tr.Remove("Limes")
	if view.Size() != 3 {
		t.Fatalf("size after outside remove = %d", view.Size())
	}

	if v, ok := view.Remove("LimeWire"); !ok || v != "LimeWire" {
		t.Fatalf("remove through view = %q, %v", v, ok)
	}
	if view.Size() != 2 {
		t.Fatalf("size after view remove = %d", view.Size())
	}
	checkInvariant(t, tr)
}

// Removing through a bounded iterator relocates the subtree when the
// removal rewires it, including removal of the subtree root itself.
func TestPrefixViewIteratorRemove(t *testing.T) {
	tr := limeTrie()

	view, err := tr.PrefixView("Lime", 0, 64)
	if err != nil {
		t.Fatalf("prefix view: %v", err)
	}

	it := view.Iterate()
	for it.Next() {
		if err := it.Remove(); err != nil {
			t.Fatalf("remove %q: %v", it.Entry().Key, err)
		}
		checkInvariant(t, tr)
	}
	if err := it.Err(); err != nil {
		t.Fatalf("iterator: %v", err)
	}

	if !view.IsEmpty() {
		t.Fatalf("view not empty, %d left", view.Size())
	}
	for _, w := range []string{"Lax", "Later", "Lake", "Lovely"} {
		if !tr.Contains(w) {
			t.Fatalf("%q lost", w)
		}
	}
	if tr.Size() != 4 {
		t.Fatalf("trie size = %d", tr.Size())
	}
}

// A prefix covering a whole stored key makes the view a singleton.
func TestPrefixViewSingleton(t *testing.T) {
	tr := limeTrie()

	view, err := tr.PrefixView("LimeWire", 0, 128)
	if err != nil {
		t.Fatalf("prefix view: %v", err)
	}

	got := viewKeys(t, view)
	if len(got) != 1 || got[0] != "LimeWire" {
		t.Fatalf("view keys = %v", got)
	}
	if view.Size() != 1 {
		t.Fatalf("size = %d", view.Size())
	}
}

// Integers 0..19 keyed as big.Ints: the view over the single bit of 0b1
// holds exactly the odd keys.
func TestPrefixViewBigInt(t *testing.T) {
	tr := New[*big.Int, int](key.BigIntAnalyzer{})
	for i := 0; i < 20; i++ {
		tr.Put(big.NewInt(int64(i)), i)
	}
	if tr.Size() != 20 {
		t.Fatalf("size = %d", tr.Size())
	}

	view, err := tr.PrefixView(big.NewInt(1), 0, 1)
	if err != nil {
		t.Fatalf("prefix view: %v", err)
	}

	got := make(map[int]bool)
	it := view.Iterate()
	for it.Next() {
		got[it.Entry().Value] = true
	}
	if err := it.Err(); err != nil {
		t.Fatalf("iteration: %v", err)
	}

	if len(got) != 10 {
		t.Fatalf("view holds %d entries, want 10", len(got))
	}
	for i := 1; i < 20; i += 2 {
		if !got[i] {
			t.Fatalf("odd key %d missing from view", i)
		}
	}
}

// The view contains exactly the stored keys the analyzer declares prefixed.
func TestPrefixViewMatchesAnalyzer(t *testing.T) {
	rng := trietest.Rand(23)
	keys := trietest.RandomKeys(rng, 150, 3)

	tr := bytesTrie()
	analyzer := tr.Analyzer()
	for i, k := range keys {
		tr.Put(k, i)
	}

	for _, lead := range keys[:20] {
		prefix := lead[:1]
		view, err := tr.PrefixView(prefix, 0, 8)
		if err != nil {
			t.Fatalf("prefix view over %x: %v", prefix, err)
		}

		want := make(map[string]bool)
		for _, k := range keys {
			if analyzer.IsPrefix(prefix, 0, 8, k) {
				want[string(k)] = true
			}
		}

		got := make(map[string]bool)
		it := view.Iterate()
		for it.Next() {
			got[string(it.Entry().Key)] = true
		}
		if err := it.Err(); err != nil {
			t.Fatalf("iteration: %v", err)
		}

		if len(got) != len(want) {
			t.Fatalf("view over %x holds %d keys, want %d", prefix, len(got), len(want))
		}
		for k := range want {
			if !got[k] {
				t.Fatalf("key %x missing from view over %x", k, prefix)
			}
		}
		if view.Size() != len(want) {
			t.Fatalf("size = %d, want %d", view.Size(), len(want))
		}
	}
}
