// Package mock provides test doubles for the listing search system.
// These mocks are designed for tests that need configurable behavior
// (injected errors, disconnection, call counting).
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/tripdeck/listing-search/internal/cache"
)

// Store is a configurable mock implementation of cache.Store.
// It keeps entries in a plain map (ignoring TTLs) and supports injected
// errors and a disconnected mode for testing cache degradation paths.
type Store struct {
	mu           sync.Mutex
	items        map[string][]byte
	getErr       error
	setErr       error
	disconnected bool

	getCalls int
	setCalls int
	delCalls int
}

// NewStore creates an empty mock store.
// The store is configured using the builder pattern methods.
func NewStore() *Store {
	return &Store{
		items: make(map[string][]byte),
	}
}

// WithGetError configures every Get to return the given error.
func (s *Store) WithGetError(err error) *Store {
	s.getErr = err
	return s
}

// WithSetError configures every Set to return the given error.
func (s *Store) WithSetError(err error) *Store {
	s.setErr = err
	return s
}

// WithDisconnected configures the store to report as disconnected.
func (s *Store) WithDisconnected() *Store {
	s.disconnected = true
	return s
}

// Get implements cache.Store.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.getCalls++
	if s.getErr != nil {
		return nil, false, s.getErr
	}

	value, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

// Set implements cache.Store.
func (s *Store) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setCalls++
	if s.setErr != nil {
		return s.setErr
	}

	s.items[key] = value
	return nil
}

// Del implements cache.Store.
func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.delCalls++
	delete(s.items, key)
	return nil
}

// KeyCount implements cache.Store.
func (s *Store) KeyCount(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return 0, s.getErr
	}
	return int64(len(s.items)), nil
}

// Connected implements cache.Store.
func (s *Store) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.disconnected
}

// GetCalls returns the number of Get invocations.
func (s *Store) GetCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getCalls
}

// SetCalls returns the number of Set invocations.
func (s *Store) SetCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCalls
}

// DelCalls returns the number of Del invocations.
func (s *Store) DelCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delCalls
}

// Put stores a raw entry directly, bypassing error injection.
// Tests use it to pre-seed cache contents.
func (s *Store) Put(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// Ensure Store implements cache.Store at compile time.
var _ cache.Store = (*Store)(nil)
