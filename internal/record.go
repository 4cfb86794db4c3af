package internal

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

// Clock returns the current time. Injected so tests are deterministic.
type Clock func() time.Time

// record is a list persisted as one value under one key. Reads and
// read-modify-write cycles on the same record are serialized by mu, and the
// in-memory copy stays authoritative even when a write to the store fails.
//
// A record whose stored value could not be read is never written: changes
// made meanwhile are queued in pending and replayed on top of the stored
// value once a read succeeds.
type record[T any] struct {
	kv     KVStore
	key    string
	schema string
	now    Clock

	mu      sync.Mutex
	loaded  bool
	dirty   bool
	items   []T
	pending []func([]T) ([]T, error)
}

func newRecord[T any](kv KVStore, key, schema string, now Clock) *record[T] {
	if now == nil {
		now = time.Now
	}
	return &record[T]{kv: kv, key: key, schema: schema, now: now}
}

// snapshot returns a copy of the current items
func (r *record[T]) snapshot(ctx context.Context) []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureLoaded(ctx)
	if r.dirty {
		r.persist(ctx)
	}
	return slices.Clone(r.items)
}

// mutate applies fn to a copy of the items, keeps the result in memory and
// persists it. fn returning an error aborts without any change.
func (r *record[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureLoaded(ctx)
	next, err := fn(slices.Clone(r.items))
	if err != nil {
		return nil, err
	}
	r.items = next

	if !r.loaded {
		r.pending = append(r.pending, fn)
		LogWarn("Holding change to %s in memory until it can be read (%d pending)", r.key, len(r.pending))
		return slices.Clone(next), nil
	}

	r.persist(ctx)
	return slices.Clone(next), nil
}

// ensureLoaded must be called with mu held
func (r *record[T]) ensureLoaded(ctx context.Context) {
	if r.loaded {
		return
	}

	raw, found, err := r.kv.Get(ctx, r.key)
	if err != nil {
		// Not cached: a later read may succeed.
		LogWarn("Failed to read %s, treating as empty: %v", r.key, err)
		return
	}

	var base []T
	if found {
		items, err := decodeValue[[]T](r.key, r.schema, raw)
		if err != nil {
			var corrupt *CorruptCacheError
			if errors.As(err, &corrupt) {
				LogWarn("Discarding unreadable value: %v", err)
			}
		} else {
			base = items
		}
	}

	for _, fn := range r.pending {
		next, err := fn(slices.Clone(base))
		if err != nil {
			LogWarn("Dropping held change to %s: %v", r.key, err)
			continue
		}
		base = next
	}

	r.loaded = true
	r.dirty = len(r.pending) > 0
	r.pending = nil
	r.items = base
}

// persist must be called with mu held
func (r *record[T]) persist(ctx context.Context) {
	items := r.items
	if items == nil {
		items = []T{}
	}

	value, err := encodeValue(r.schema, items, r.now())
	if err != nil {
		LogError("Failed to encode %s: %v", r.key, err)
		return
	}

	if err := r.kv.Set(ctx, r.key, value); err != nil {
		LogWarn("Failed to persist %s, keeping in-memory state: %v", r.key, err)
		return
	}
	r.dirty = false
	LogDebug("Persisted %s (%d item(s))", r.key, len(items))
}
