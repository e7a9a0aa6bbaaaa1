package memory

import (
	"sync"

	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
)

// Ensure ResourceCache implements the interface.
var _ driven.Cache[struct{}] = (*ResourceCache[struct{}])(nil)

// ResourceCache is an in-memory, generation-stamped record cache for one
// resource kind. It lives for the process lifetime only.
type ResourceCache[V any] struct {
	mu      sync.RWMutex
	name    string
	entries map[string]V
	gen     uint64
}

// NewResourceCache creates an empty cache. The name is used in logs and metrics.
func NewResourceCache[V any](name string) *ResourceCache[V] {
	return &ResourceCache[V]{
		name:    name,
		entries: make(map[string]V),
	}
}

// Name returns the cache name.
func (c *ResourceCache[V]) Name() string {
	return c.name
}

// Get returns the cached record and whether it was present.
func (c *ResourceCache[V]) Get(id string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[id]
	return v, ok
}

// Put stores a record, replacing any previous one.
func (c *ResourceCache[V]) Put(id string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = v
}

// PutAt stores a record only if no Clear happened since gen was read.
func (c *ResourceCache[V]) PutAt(gen uint64, id string, v V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.entries[id] = v
	return true
}

// Generation returns the current generation.
func (c *ResourceCache[V]) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// Clear drops the backing map and advances the generation.
// Calling it on an empty cache is harmless.
func (c *ResourceCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]V)
	c.gen++
}

// Len returns the number of cached records.
func (c *ResourceCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
