package trie

import (
	"bytes"
	"errors"
	"testing"

	"github.com/plprobelab/go-patricia/internal/trietest"
)

// hundredTrie stores the single-byte keys 0..99.
func hundredTrie() *Trie[[]byte, int] {
	tr := bytesTrie()
	for i := 0; i < 100; i++ {
		tr.Put([]byte{byte(i)}, i)
	}
	return tr
}

func rangeKeys[K, V any](t *testing.T, view *RangeView[K, V]) []K {
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

func TestRangeViewBytes(t *testing.T) {
	tr := hundredTrie()

	from, to := []byte{0x0A}, []byte{0x14}
	view, err := tr.RangeView(&from, true, &to, false)
	if err != nil {
		t.Fatalf("range view: %v", err)
	}

	got := rangeKeys(t, view)
	if len(got) != 10 {
		t.Fatalf("view holds %d keys, want 10", len(got))
	}
	for i, k := range got {
		if !bytes.Equal(k, []byte{byte(0x0A + i)}) {
			t.Fatalf("key[%d] = %x", i, k)
		}
	}

	if view.Size() != 10 {
		t.Fatalf("size = %d", view.Size())
	}
	if first, ok := view.FirstKey(); !ok || !bytes.Equal(first, from) {
		t.Fatalf("first = %x, %v", first, ok)
	}
	if last, ok := view.LastKey(); !ok || !bytes.Equal(last, []byte{0x13}) {
		t.Fatalf("last = %x, %v", last, ok)
	}
}

func TestRangeViewInclusivity(t *testing.T) {
	tr := hundredTrie()
	from, to := []byte{0x0A}, []byte{0x14}

	cases := []struct {
		fromIncl, toIncl bool
		first, last      byte
		size             int
	}{
		{true, true, 0x0A, 0x14, 11},
		{true, false, 0x0A, 0x13, 10},
		{false, true, 0x0B, 0x14, 10},
		{false, false, 0x0B, 0x13, 9},
	}

	for _, c := range cases {
		view, err := tr.RangeView(&from, c.fromIncl, &to, c.toIncl)
		if err != nil {
			t.Fatalf("range view: %v", err)
		}
		if view.Size() != c.size {
			t.Fatalf("fromIncl=%v toIncl=%v: size = %d, want %d", c.fromIncl, c.toIncl, view.Size(), c.size)
		}
		first, _ := view.FirstKey()
		last, _ := view.LastKey()
		if first[0] != c.first || last[0] != c.last {
			t.Fatalf("fromIncl=%v toIncl=%v: bounds %x..%x, want %x..%x",
				c.fromIncl, c.toIncl, first, last, c.first, c.last)
		}
	}
}

func TestRangeViewErrors(t *testing.T) {
	tr := hundredTrie()

	if _, err := tr.RangeView(nil, false, nil, false); !errors.Is(err, ErrNoRangeBound) {
		t.Fatalf("err = %v, want ErrNoRangeBound", err)
	}

	from, to := []byte{0x20}, []byte{0x10}
	if _, err := tr.RangeView(&from, true, &to, false); !errors.Is(err, ErrInvertedRange) {
		t.Fatalf("err = %v, want ErrInvertedRange", err)
	}
}

func TestRangeViewOperations(t *testing.T) {
	tr := hundredTrie()

	view, err := tr.SubView([]byte{0x0A}, []byte{0x14})
	if err != nil {
		t.Fatalf("sub view: %v", err)
	}

	if _, ok := view.Get([]byte{0x30}); ok {
		t.Fatalf("get outside range succeeded")
	}
	if view.Contains([]byte{0x14}) {
		t.Fatalf("exclusive upper bound included")
	}
	if v, ok := view.Get([]byte{0x0B}); !ok || v != 0x0B {
		t.Fatalf("get inside range = %d, %v", v, ok)
	}

	if err := view.Put([]byte{0x30}, 0); !errors.Is(err, ErrKeyOutsideRange) {
		t.Fatalf("put outside range = %v", err)
	}
	if err := view.Put([]byte{0x0B}, 111); err != nil {
		t.Fatalf("put inside range: %v", err)
	}
	if v, _ := tr.Get([]byte{0x0B}); v != 111 {
		t.Fatalf("trie missed view put: %d", v)
	}

	if _, ok := view.Remove([]byte{0x30}); ok {
		t.Fatalf("remove outside range succeeded")
	}
	if tr.Contains([]byte{0x30}) == false {
		t.Fatalf("outside key disturbed")
	}
	if _, ok := view.Remove([]byte{0x0C}); !ok {
		t.Fatalf("remove inside range failed")
	}
	if view.Size() != 9 {
		t.Fatalf("size = %d", view.Size())
	}
	checkInvariant(t, tr)
}

func TestHeadTailViews(t *testing.T) {
	tr := hundredTrie()

	head := tr.HeadView([]byte{0x05})
	if head.Size() != 5 {
		t.Fatalf("head size = %d", head.Size())
	}
	if last, ok := head.LastKey(); !ok || last[0] != 0x04 {
		t.Fatalf("head last = %x, %v", last, ok)
	}

	tail := tr.TailView([]byte{0x60})
	if tail.Size() != 4 {
		t.Fatalf("tail size = %d", tail.Size())
	}
	if first, ok := tail.FirstKey(); !ok || first[0] != 0x60 {
		t.Fatalf("tail first = %x, %v", first, ok)
	}
	if last, ok := tail.LastKey(); !ok || last[0] != 0x63 {
		t.Fatalf("tail last = %x, %v", last, ok)
	}
}

func TestSubViewNesting(t *testing.T) {
	tr := hundredTrie()

	outer, err := tr.SubView([]byte{0x0A}, []byte{0x32})
	if err != nil {
		t.Fatalf("outer view: %v", err)
	}

	inner, err := outer.SubView([]byte{0x10}, []byte{0x20})
	if err != nil {
		t.Fatalf("inner view: %v", err)
	}
	if inner.Size() != 16 {
		t.Fatalf("inner size = %d", inner.Size())
	}

	// Sub-views must stay inside their parent.
	if _, err := outer.SubView([]byte{0x05}, []byte{0x20}); !errors.Is(err, ErrKeyOutsideRange) {
		t.Fatalf("escaping from bound = %v", err)
	}
	if _, err := outer.SubView([]byte{0x10}, []byte{0x40}); !errors.Is(err, ErrKeyOutsideRange) {
		t.Fatalf("escaping to bound = %v", err)
	}
	// The parent's own upper bound is admitted as a sub-view bound.
	if _, err := outer.SubView([]byte{0x10}, []byte{0x32}); err != nil {
		t.Fatalf("reusing parent bound: %v", err)
	}
}

// The view contains exactly the stored keys the comparator places inside
// the bounds.
func TestRangeViewMatchesComparator(t *testing.T) {
	rng := trietest.Rand(31)
	keys := trietest.RandomKeys(rng, 150, 3)

	tr := bytesTrie()
	analyzer := tr.Analyzer()
	for i, k := range keys {
		tr.Put(k, i)
	}

	for trial := 0; trial < 20; trial++ {
		a := keys[rng.Intn(len(keys))]
		b := keys[rng.Intn(len(keys))]
		if analyzer.Compare(a, b) > 0 {
			a, b = b, a
		}

		view, err := tr.RangeView(&a, true, &b, false)
		if err != nil {
			t.Fatalf("range view %x..%x: %v", a, b, err)
		}

		want := make(map[string]bool)
		for _, k := range keys {
			if analyzer.Compare(a, k) <= 0 && analyzer.Compare(k, b) < 0 {
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
			t.Fatalf("view %x..%x holds %d keys, want %d", a, b, len(got), len(want))
		}
		for k := range want {
			if !got[k] {
				t.Fatalf("key %x missing from view %x..%x", k, a, b)
			}
		}
	}
}

// Iteration through a range view fails fast like any other iterator.
func TestRangeViewIteratorFailFast(t *testing.T) {
	tr := hundredTrie()

	view := tr.TailView([]byte{0x10})
	it := view.Iterate()
	if !it.Next() {
		t.Fatalf("expected a first entry")
	}
	tr.Put([]byte{0xF0}, 240)
	if it.Next() {
		t.Fatalf("iterator survived a concurrent put")
	}
	if !errors.Is(it.Err(), ErrConcurrentModification) {
		t.Fatalf("err = %v", it.Err())
	}
}
