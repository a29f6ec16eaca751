package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tripdeck/listing-search/internal/domain"
	"github.com/tripdeck/listing-search/internal/infrastructure/retry"
)

// dialTimeout bounds the initial connectivity probe at startup.
const dialTimeout = 2 * time.Second

// RedisStore is a Store backed by a dedicated Redis database per domain.
//
// Failures never propagate as fatal: a failed operation flips the connected
// flag, the call degrades to a miss or no-op, and a background probe with
// capped exponential backoff tries to re-establish the connection. While
// disconnected, Get and Set return immediately without touching the network.
type RedisStore struct {
	client    *redis.Client
	domain    domain.Domain
	log       zerolog.Logger
	connected atomic.Bool
	probing   atomic.Bool
}

// NewRedisStore creates a RedisStore for one listing domain.
// An unreachable Redis at startup is not an error; the store begins in
// degraded mode and recovers when the reconnect probe succeeds.
func NewRedisStore(d domain.Domain, opts *redis.Options, log zerolog.Logger) *RedisStore {
	s := &RedisStore{
		client: redis.NewClient(opts),
		domain: d,
		log:    log.With().Str("component", "cache").Str("domain", d.String()).Logger(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Cache store unreachable at startup, running degraded")
		s.startReconnect()
	} else {
		s.connected.Store(true)
	}

	return s
}

// Get implements Store.Get.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !s.connected.Load() {
		s.startReconnect()
		return nil, false, domain.ErrCacheUnavailable
	}

	val, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		s.markDisconnected(err)
		return nil, false, fmt.Errorf("%w: get %s: %v", domain.ErrCacheUnavailable, key, err)
	}
	return val, true, nil
}

// Set implements Store.Set.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !s.connected.Load() {
		s.startReconnect()
		return domain.ErrCacheUnavailable
	}

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		s.markDisconnected(err)
		return fmt.Errorf("%w: set %s: %v", domain.ErrCacheUnavailable, key, err)
	}
	return nil
}

// Del implements Store.Del.
func (s *RedisStore) Del(ctx context.Context, key string) error {
	if !s.connected.Load() {
		return domain.ErrCacheUnavailable
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.markDisconnected(err)
		return fmt.Errorf("%w: del %s: %v", domain.ErrCacheUnavailable, key, err)
	}
	return nil
}

// KeyCount implements Store.KeyCount. Each domain owns a whole Redis
// database, so DBSIZE is the namespace key count.
func (s *RedisStore) KeyCount(ctx context.Context) (int64, error) {
	if !s.connected.Load() {
		return 0, domain.ErrCacheUnavailable
	}

	n, err := s.client.DBSize(ctx).Result()
	if err != nil {
		s.markDisconnected(err)
		return 0, fmt.Errorf("%w: dbsize: %v", domain.ErrCacheUnavailable, err)
	}
	return n, nil
}

// Connected implements Store.Connected.
func (s *RedisStore) Connected() bool {
	return s.connected.Load()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// markDisconnected flips the store into degraded mode and kicks off the
// reconnect probe.
func (s *RedisStore) markDisconnected(err error) {
	if s.connected.CompareAndSwap(true, false) {
		s.log.Warn().Err(err).Msg("Cache store connection lost, degrading to compute-only")
	}
	s.startReconnect()
}

// startReconnect launches a single background probe. At most one probe runs
// at a time; further calls while probing are no-ops.
func (s *RedisStore) startReconnect() {
	if !s.probing.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer s.probing.Store(false)

		err := retry.Do(context.Background(), func() error {
			ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
			defer cancel()
			return s.client.Ping(ctx).Err()
		}, retry.ReconnectConfig)

		if err != nil {
			// Retry budget exhausted. The next Get/Set re-arms the probe.
			s.log.Error().Err(err).Msg("Cache store reconnect attempts exhausted")
			return
		}

		s.connected.Store(true)
		s.log.Info().Msg("Cache store connection restored")
	}()
}

// Ensure RedisStore implements Store at compile time.
var _ Store = (*RedisStore)(nil)
