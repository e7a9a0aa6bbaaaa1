package driven

// Cache is a keyed store of normalised records for one resource kind.
//
// Every mutation is generation-stamped: Clear advances the generation, and
// PutAt refuses writes stamped with an older one. A fetch that started
// before a sign-out therefore cannot repopulate the cache afterwards.
type Cache[V any] interface {
	// Get returns the cached record and whether it was present.
	Get(id string) (V, bool)

	// Put stores a record unconditionally.
	Put(id string, v V)

	// PutAt stores a record only if gen is still the current generation.
	// Returns false if the write was discarded.
	PutAt(gen uint64, id string, v V) bool

	// Generation returns the current generation.
	Generation() uint64

	// Clear discards every entry and advances the generation.
	Clear()

	// Len returns the number of entries.
	Len() int
}

// Clearable is anything the session empties on sign-out.
type Clearable interface {
	Clear()
}
