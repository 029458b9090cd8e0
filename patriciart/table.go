// Package patriciart provides a nearest-key table backed by a PATRICIA
// trie. It wraps the single-owner trie with the synchronization and
// instrumentation a shared lookup table needs.
package patriciart

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/plprobelab/go-patricia/key"
	"github.com/plprobelab/go-patricia/trie"
	"github.com/plprobelab/go-patricia/util"
)

// Table is a keyed lookup table that answers nearest-key queries under the
// trie's XOR metric. All exported methods are safe for concurrent use.
type Table[K, V any] struct {
	cfg *Config[K]

	// mu serializes access to keys; the trie itself is single-owner.
	mu   sync.RWMutex
	keys *trie.Trie[K, V]
}

func New[K, V any](analyzer key.Analyzer[K], cfg *Config[K]) *Table[K, V] {
	if cfg == nil {
		cfg = DefaultConfig[K]()
	}
	return &Table[K, V]{
		cfg:  cfg,
		keys: trie.New[K, V](analyzer),
	}
}

// Add stores the key/value pair. It reports whether the key was newly
// added; a key rejected by the configured filter or already present reports
// false.
func (t *Table[K, V]) Add(ctx context.Context, k K, v V) (bool, error) {
	_, span := util.StartSpan(ctx, "Table.Add", trace.WithAttributes(
		attribute.Int("KeyBits", t.keys.Analyzer().LengthInBits(k))))
	defer span.End()

	if filter := t.cfg.KeyFilter; filter != nil && !filter(k) {
		return false, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	_, replaced := t.keys.Put(k, v)
	return !replaced, nil
}

// Remove removes the key, reporting whether it was present.
func (t *Table[K, V]) Remove(ctx context.Context, k K) (bool, error) {
	_, span := util.StartSpan(ctx, "Table.Remove", trace.WithAttributes(
		attribute.Int("KeyBits", t.keys.Analyzer().LengthInBits(k))))
	defer span.End()

	t.mu.Lock()
	defer t.mu.Unlock()
	_, removed := t.keys.Remove(k)
	return removed, nil
}

// Get returns the value stored for an exact key.
func (t *Table[K, V]) Get(k K) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.keys.Get(k)
}

// Nearest returns the entry whose key is closest to k under the XOR
// metric.
func (t *Table[K, V]) Nearest(ctx context.Context, k K) (trie.Entry[K, V], bool) {
	_, span := util.StartSpan(ctx, "Table.Nearest")
	defer span.End()

	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.keys.Select(k)
	return e, ok
}

// NearestN returns up to n entries in order of XOR closeness to k.
func (t *Table[K, V]) NearestN(ctx context.Context, k K, n int) ([]trie.Entry[K, V], error) {
	_, span := util.StartSpan(ctx, "Table.NearestN", trace.WithAttributes(
		attribute.Int("N", n)))
	defer span.End()

	t.mu.RLock()
	defer t.mu.RUnlock()

	if n <= 0 {
		return nil, nil
	}

	entries := make([]trie.Entry[K, V], 0, n)
	_, _, err := t.keys.SelectWith(k, func(e trie.Entry[K, V]) trie.Decision {
		entries = append(entries, e)
		if len(entries) == n {
			return trie.Exit
		}
		return trie.Continue
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Size returns the number of keys in the table.
func (t *Table[K, V]) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.keys.Size()
}
