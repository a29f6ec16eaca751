package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tripdeck/listing-search/internal/infrastructure/timeutil"
)

// memoryEntry is a stored value with its expiry deadline.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is an in-process Store used in development mode and in tests.
// It honors TTLs through the injected clock and is always connected.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryEntry
	clock timeutil.Clock
}

// NewMemoryStore creates a MemoryStore using the real system clock.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(timeutil.NewRealClock())
}

// NewMemoryStoreWithClock creates a MemoryStore with an injected clock.
// Tests use a mock clock to exercise TTL expiry without sleeping.
func NewMemoryStoreWithClock(clock timeutil.Clock) *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryEntry),
		clock: clock,
	}
}

// Get implements Store.Get. Expired entries are removed lazily.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	if !s.clock.Now().Before(entry.expiresAt) {
		delete(s.items, key)
		return nil, false, nil
	}

	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, true, nil
}

// Set implements Store.Set.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.items[key] = memoryEntry{
		value:     stored,
		expiresAt: s.clock.Now().Add(ttl),
	}
	return nil
}

// Del implements Store.Del.
func (s *MemoryStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

// KeyCount implements Store.KeyCount, counting only unexpired entries.
func (s *MemoryStore) KeyCount(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	var n int64
	for _, entry := range s.items {
		if now.Before(entry.expiresAt) {
			n++
		}
	}
	return n, nil
}

// Connected implements Store.Connected. A MemoryStore is always connected.
func (s *MemoryStore) Connected() bool {
	return true
}

// Ensure MemoryStore implements Store at compile time.
var _ Store = (*MemoryStore)(nil)
