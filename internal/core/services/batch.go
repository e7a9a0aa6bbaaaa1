package services

import (
	"context"

	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
)

// BatchFunc resolves ids with one multiplexed provider request. Ids missing
// from the returned map failed individually; an error means the request as
// a whole failed.
type BatchFunc[V any] func(ctx context.Context, ids []string) (map[string]V, error)

// BatchResult is the outcome of ResolveMany.
type BatchResult[V any] struct {
	// Values holds the resolved records in first-occurrence input order.
	Values []V
	// Hits counts ids served from the cache.
	Hits int
	// Skipped lists ids the provider failed individually.
	Skipped []string
}

// ResolveMany partitions ids into cache hits and misses, resolves the
// misses with a single fetch call and caches what came back. Duplicate
// ids are collapsed. When every id is cached, fetch is never called.
//
// Fetched records are written with the generation read before the fetch,
// so a cache cleared meanwhile stays empty.
func ResolveMany[V any](ctx context.Context, cache driven.Cache[V], ids []string, fetch BatchFunc[V]) (BatchResult[V], error) {
	var result BatchResult[V]

	gen := cache.Generation()
	order := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	found := make(map[string]V, len(ids))
	var missing []string

	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		order = append(order, id)

		if v, ok := cache.Get(id); ok {
			found[id] = v
			result.Hits++
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		fetched, err := fetch(ctx, missing)
		if err != nil {
			return BatchResult[V]{}, err
		}
		for _, id := range missing {
			v, ok := fetched[id]
			if !ok {
				result.Skipped = append(result.Skipped, id)
				continue
			}
			cache.PutAt(gen, id, v)
			found[id] = v
		}
	}

	result.Values = make([]V, 0, len(found))
	for _, id := range order {
		if v, ok := found[id]; ok {
			result.Values = append(result.Values, v)
		}
	}
	return result, nil
}
