package domain

import "errors"

// Sentinel errors for the listing search core.
// Handlers map these to HTTP status codes with errors.Is.
var (
	// ErrInvalidFilter indicates a caller-supplied filter is missing a
	// required field or carries an inconsistent value (e.g. dropoff before
	// pickup). Surfaced to the caller as a client error.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrListingNotFound indicates a single-listing fetch matched nothing.
	ErrListingNotFound = errors.New("listing not found")

	// ErrStoreQuery indicates the backing store failed while composing a
	// result set. This is the only failure that crosses the core boundary
	// as a server error.
	ErrStoreQuery = errors.New("backing store query failed")

	// ErrCacheUnavailable indicates a cache store operation failed or the
	// connection is down. Never surfaced to callers; the search path
	// degrades to compute-and-return.
	ErrCacheUnavailable = errors.New("cache unavailable")
)
