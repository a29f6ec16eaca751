package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdeck/listing-search/internal/infrastructure/timeutil"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", []byte(`{"a":1}`), time.Minute))

	value, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), value)

	require.NoError(t, store.Del(ctx, "k"))

	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	clock := timeutil.NewMockClock(time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC))
	store := NewMemoryStoreWithClock(clock)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "search", []byte("payload"), 10*time.Minute))

	// Just inside the TTL.
	clock.Advance(10*time.Minute - time.Second)
	_, ok, err := store.Get(ctx, "search")
	require.NoError(t, err)
	assert.True(t, ok)

	// At the deadline the entry is expired.
	clock.Advance(time.Second)
	_, ok, err = store.Get(ctx, "search")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStorePerEntryTTL(t *testing.T) {
	clock := timeutil.NewMockClock(time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC))
	store := NewMemoryStoreWithClock(clock)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short", []byte("a"), time.Minute))
	require.NoError(t, store.Set(ctx, "long", []byte("b"), time.Hour))

	clock.Advance(5 * time.Minute)

	_, ok, err := store.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Get(ctx, "long")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStoreKeyCountSkipsExpired(t *testing.T) {
	clock := timeutil.NewMockClock(time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC))
	store := NewMemoryStoreWithClock(clock)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), time.Hour))

	n, err := store.KeyCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	clock.Advance(30 * time.Minute)

	n, err = store.KeyCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := []byte("immutable")
	require.NoError(t, store.Set(ctx, "k", original, time.Minute))

	// Mutating the caller's slice must not affect the stored entry.
	original[0] = 'X'

	value, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("immutable"), value)

	// Mutating the returned slice must not affect a later read.
	value[0] = 'Y'
	again, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), again)
}

func TestMemoryStoreAlwaysConnected(t *testing.T) {
	assert.True(t, NewMemoryStore().Connected())
}
