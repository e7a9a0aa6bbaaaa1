package services

import (
	"context"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
	"github.com/custodia-labs/wsbridge/internal/logger"
)

// recordCache pairs a cache with its kind for logging and metrics.
type recordCache[V any] struct {
	kind    domain.ResourceKind
	store   driven.Cache[V]
	metrics driven.Metrics
}

// readThrough returns the cached record for key unless force is set,
// otherwise fetches and caches it. A fetch error leaves the cache untouched.
func (c recordCache[V]) readThrough(
	ctx context.Context, key string, force bool, fetch func(context.Context) (V, error),
) (V, error) {
	if !force {
		if v, ok := c.store.Get(key); ok {
			logger.Debug("cache hit: %s %s", c.kind, key)
			c.metrics.RecordCacheHit(c.kind.String())
			return v, nil
		}
	}
	logger.Debug("cache miss: %s %s (force=%t)", c.kind, key, force)
	c.metrics.RecordCacheMiss(c.kind.String())

	gen := c.store.Generation()
	v, err := fetch(ctx)
	if err != nil {
		var zero V
		return zero, err
	}
	if !c.store.PutAt(gen, key, v) {
		logger.Debug("cache write dropped after invalidation: %s %s", c.kind, key)
	}
	return v, nil
}

// putAll caches listed records fetched under generation gen.
func (c recordCache[V]) putAll(gen uint64, items []V, key func(V) string) {
	for _, item := range items {
		if !c.store.PutAt(gen, key(item), item) {
			return
		}
	}
}
