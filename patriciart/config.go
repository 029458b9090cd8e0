package patriciart

// KeyFilterFunc is a function that determines whether a key may be added to
// the table.
type KeyFilterFunc[K any] func(k K) bool

// Config holds configuration options for a Table.
type Config[K any] struct {
	// KeyFilter defines the filter that is applied before a key is added
	// to the table. If nil, no filter is applied.
	KeyFilter KeyFilterFunc[K]
}

// DefaultConfig returns a default configuration for a Table.
func DefaultConfig[K any]() *Config[K] {
	return &Config[K]{
		KeyFilter: nil,
	}
}
