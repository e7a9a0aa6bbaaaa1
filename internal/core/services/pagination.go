package services

import (
	"context"
	"fmt"
	"iter"

	"github.com/custodia-labs/wsbridge/internal/core/domain"
)

// PageFunc fetches the page that starts at cursor. The first call receives "".
type PageFunc[T any] func(ctx context.Context, cursor string) (domain.Page[T], error)

// Pages lazily walks a cursor-paginated listing, yielding items in
// provider order. Items whose key was already yielded are dropped; a nil
// key disables de-duplication.
//
// A cursor the provider has returned before ends the walk with a
// *domain.DataIntegrityError. Fetch errors are yielded once and end the
// walk. Nothing is retried.
func Pages[T any](ctx context.Context, op string, fetch PageFunc[T], key func(T) string) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		seenCursors := make(map[string]struct{})
		seenKeys := make(map[string]struct{})
		cursor := ""

		for {
			page, err := fetch(ctx, cursor)
			if err != nil {
				yield(zero, err)
				return
			}

			for _, item := range page.Items {
				if key != nil {
					k := key(item)
					if _, dup := seenKeys[k]; dup {
						continue
					}
					seenKeys[k] = struct{}{}
				}
				if !yield(item, nil) {
					return
				}
			}

			if !page.HasMore() {
				return
			}
			next := page.NextCursor
			if _, repeated := seenCursors[next]; repeated || next == cursor {
				yield(zero, &domain.DataIntegrityError{
					Op:      op,
					Message: fmt.Sprintf("provider repeated page cursor %q", next),
				})
				return
			}
			seenCursors[next] = struct{}{}
			cursor = next
		}
	}
}

// CollectPages eagerly accumulates every page of a listing.
// See Pages for ordering, de-duplication and cursor rules.
func CollectPages[T any](ctx context.Context, op string, fetch PageFunc[T], key func(T) string) ([]T, error) {
	var out []T
	for item, err := range Pages(ctx, op, fetch, key) {
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
