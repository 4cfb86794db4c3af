package internal

import (
	"context"
	"fmt"
	"strings"
)

// DefaultCacheBound is the number of entries kept per namespace
const DefaultCacheBound = 10

// Cache namespaces used by the layer
const (
	NamespaceProfitAnalyses = "profit_analyses"
	NamespaceMarketPrices   = "market_prices"

	NamespaceCropRecommendations = "crop_recommendations"
)

// CacheKey returns the KV key for a namespace and optional sub-key
func CacheKey(namespace, sub string) string {
	if sub == "" {
		return "cache:" + namespace
	}
	return "cache:" + namespace + ":" + sub
}

// ReferenceCache is a bounded, newest-first list of entries for one
// namespace. Eviction follows physical insertion order; the entry
// timestamp is informational only.
type ReferenceCache[T any] struct {
	namespace string
	bound     int
	rec       *record[CacheEntry[T]]
}

// NewReferenceCache creates a cache for namespace (and optional sub-key)
// keeping at most bound entries. The namespace may not contain ':', which
// separates it from the sub-key.
func NewReferenceCache[T any](kv KVStore, namespace, sub string, bound int, now Clock) (*ReferenceCache[T], error) {
	if namespace == "" {
		return nil, fmt.Errorf("cache namespace is required")
	}
	if strings.Contains(namespace, ":") {
		return nil, fmt.Errorf("cache namespace %q must not contain ':'", namespace)
	}
	if bound < 1 {
		return nil, fmt.Errorf("cache bound must be at least 1, got %d", bound)
	}
	return &ReferenceCache[T]{
		namespace: namespace,
		bound:     bound,
		rec:       newRecord[CacheEntry[T]](kv, CacheKey(namespace, sub), cacheSchema(namespace), now),
	}, nil
}

// Namespace returns the cache namespace
func (c *ReferenceCache[T]) Namespace() string {
	return c.namespace
}

// Bound returns the maximum number of entries kept
func (c *ReferenceCache[T]) Bound() int {
	return c.bound
}

// Put prepends entry, evicting the oldest entries beyond the bound
func (c *ReferenceCache[T]) Put(ctx context.Context, entry CacheEntry[T]) []CacheEntry[T] {
	entries, _ := c.rec.mutate(ctx, func(current []CacheEntry[T]) ([]CacheEntry[T], error) {
		next := make([]CacheEntry[T], 0, min(len(current)+1, c.bound))
		next = append(next, entry)
		for _, e := range current {
			if len(next) == c.bound {
				break
			}
			next = append(next, e)
		}
		return next, nil
	})
	return entries
}

// ReplaceAll overwrites the whole namespace with entries (newest first),
// truncated to the bound
func (c *ReferenceCache[T]) ReplaceAll(ctx context.Context, entries []CacheEntry[T]) []CacheEntry[T] {
	out, _ := c.rec.mutate(ctx, func([]CacheEntry[T]) ([]CacheEntry[T], error) {
		if len(entries) > c.bound {
			return append([]CacheEntry[T](nil), entries[:c.bound]...), nil
		}
		return append([]CacheEntry[T](nil), entries...), nil
	})
	return out
}

// GetAll returns every entry, newest first; unreadable data reads as empty
func (c *ReferenceCache[T]) GetAll(ctx context.Context) []CacheEntry[T] {
	entries := c.rec.snapshot(ctx)
	if len(entries) > c.bound {
		entries = entries[:c.bound]
	}
	return entries
}

// GetLatest returns the newest entry, if any
func (c *ReferenceCache[T]) GetLatest(ctx context.Context) (CacheEntry[T], bool) {
	entries := c.rec.snapshot(ctx)
	if len(entries) == 0 {
		var zero CacheEntry[T]
		return zero, false
	}
	return entries[0], true
}
