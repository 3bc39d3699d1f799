// Package cache holds read-through caches for API clients. Keys identify a
// query (method, path and canonical query string) and are dropped explicitly
// by the code that knows a write made them stale.
package cache

// Cache is a keyed store with explicit invalidation
type Cache[T any] interface {
	// Get retrieves a live value
	Get(key string) (T, bool)

	// Set stores a value, replacing any previous one
	Set(key string, data T)

	// Invalidate drops one key
	Invalidate(key string)

	// InvalidatePrefix drops every key starting with prefix and reports how
	// many were removed
	InvalidatePrefix(prefix string) int

	// Len returns the current number of items
	Len() int
}
