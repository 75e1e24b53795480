// Package cache is a keyed, invalidation-driven cache for server
// resource collections. Fetches on the same key are de-duplicated so at
// most one load is outstanding per key; mutations patch the cached
// collection locally instead of forcing a full reload.
package cache

import (
	"context"
	"slices"
	"sync"

	"github.com/sorail742/task-manager-frontend/internal/models"
)

// Key builds a cache key scoped by resource type and requester role.
// Role-scoping guarantees a re-login under a different role can never
// be served the previous role's view of the collection.
func Key(resource string, role models.Role) string {
	return resource + "/" + string(role)
}

// Loader fetches the full collection for a key from the server.
type Loader[T any] func(ctx context.Context) ([]T, error)

type entry[T any] struct {
	items []T
	fresh bool
	err   error
	ready chan struct{} // non-nil while a load is in flight
}

// Store caches collections of T under string keys. Safe for concurrent use.
type Store[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
}

// New returns an empty Store.
func New[T any]() *Store[T] {
	return &Store[T]{entries: make(map[string]*entry[T])}
}

// Fetch returns the cached collection when fresh. Otherwise it runs
// load, stores the result and returns it. Concurrent callers for the
// same key attach to the single outstanding load and all receive its
// result, success or error. The returned slice is a copy.
func (s *Store[T]) Fetch(ctx context.Context, key string, load Loader[T]) ([]T, error) {
	for {
		s.mu.Lock()
		e, ok := s.entries[key]
		if !ok {
			e = &entry[T]{}
			s.entries[key] = e
		}

		if e.fresh {
			items := slices.Clone(e.items)
			s.mu.Unlock()
			return items, nil
		}

		if e.ready != nil {
			// Attach to the in-flight load.
			ready := e.ready
			s.mu.Unlock()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-ready:
			}
			s.mu.Lock()
			if e.fresh {
				items := slices.Clone(e.items)
				s.mu.Unlock()
				return items, nil
			}
			if e.err != nil {
				err := e.err
				s.mu.Unlock()
				return nil, err
			}
			// Invalidated while we slept; take another turn.
			s.mu.Unlock()
			continue
		}

		e.err = nil
		e.ready = make(chan struct{})
		s.mu.Unlock()

		items, err := load(ctx)

		s.mu.Lock()
		if err != nil {
			e.err = err
		} else {
			e.items = items
			e.fresh = true
		}
		close(e.ready)
		e.ready = nil
		s.mu.Unlock()

		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	}
}

// Invalidate marks the key stale; the next Fetch reloads it.
func (s *Store[T]) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		e.fresh = false
	}
}

// Peek returns the cached collection without loading, and whether it
// was present and fresh.
func (s *Store[T]) Peek(key string) ([]T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || !e.fresh {
		return nil, false
	}
	return slices.Clone(e.items), true
}

// Mutate runs call against the server. On success it applies patch to
// the cached collection so no reload round-trip is needed; on failure
// the cache is left untouched and the error is returned. A missing or
// stale entry is simply not patched — the next Fetch reloads anyway.
func (s *Store[T]) Mutate(ctx context.Context, key string, call func(ctx context.Context) error, patch func([]T) []T) error {
	if err := call(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok && e.fresh && patch != nil {
		e.items = patch(e.items)
	}
	return nil
}

// Append returns a patch adding *item to the end of the collection.
// item is dereferenced at apply time, after the server call has filled it.
func Append[T any](item *T) func([]T) []T {
	return func(items []T) []T {
		return append(items, *item)
	}
}

// Replace returns a patch swapping the first element matching match for *item.
func Replace[T any](match func(T) bool, item *T) func([]T) []T {
	return func(items []T) []T {
		for i := range items {
			if match(items[i]) {
				items[i] = *item
				break
			}
		}
		return items
	}
}

// Remove returns a patch deleting every element matching match.
func Remove[T any](match func(T) bool) func([]T) []T {
	return func(items []T) []T {
		return slices.DeleteFunc(items, match)
	}
}
