// Package trietest provides deterministic fixtures shared by the trie and
// analyzer tests.
package trietest

import "math/rand"

// Rand returns a deterministic source so test failures reproduce.
func Rand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RandomBytes returns a random key of n bytes.
func RandomBytes(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(rng.Intn(256))
	}
	return b
}

// RandomKeys returns count distinct random keys of up to maxLen bytes (at
// least one byte each). The last byte is always non-zero: keys that differ
// only by trailing zero bytes are bit-identical, and distinct keys that
// share a node would make the tests' gold models disagree with the trie.
func RandomKeys(rng *rand.Rand, count, maxLen int) [][]byte {
	seen := make(map[string]bool, count)
	keys := make([][]byte, 0, count)
	for len(keys) < count {
		k := RandomBytes(rng, 1+rng.Intn(maxLen))
		k[len(k)-1] = byte(1 + rng.Intn(255))
		if seen[string(k)] {
			continue
		}
		seen[string(k)] = true
		keys = append(keys, k)
	}
	return keys
}

// Words returns a fixed corpus of string keys with shared prefixes.
func Words() []string {
	return []string{
		"Alberts", "Albertoo", "Albert", "Alberto", "Albertz",
		"Amber", "Amma", "Ammun", "Akka", "Akko",
		"Anna", "Alex", "Emma", "Patrick", "William",
		"Lime", "LimeWire", "LimeRadio", "Lax", "Later", "Lake", "Lovely",
		"Xavier", "Xerxes", "Zulu", "Zimbabwe",
	}
}
