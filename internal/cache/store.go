package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind. Search result entries are short-lived; a
// single hotel detail fetch tolerates a longer staleness window.
const (
	DefaultSearchTTL = 600 * time.Second
	DefaultDetailTTL = 1800 * time.Second
)

// Store is a key/value store with TTL for one listing domain.
//
// A store must never be a correctness or availability dependency: every
// implementation degrades a failed or disconnected operation to a miss (Get)
// or a no-op (Set/Del) and reports the failure through the returned error so
// callers can count it. Errors are advisory, never fatal.
type Store interface {
	// Get returns the value stored under key. ok is false on a miss,
	// including expired entries and degraded (disconnected) stores.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key for the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes key from the store.
	Del(ctx context.Context, key string) error

	// KeyCount returns the number of live keys in the store's namespace.
	KeyCount(ctx context.Context) (int64, error)

	// Connected reports whether the store's backing connection is healthy.
	Connected() bool
}
