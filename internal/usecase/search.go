package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripdeck/listing-search/internal/cache"
	"github.com/tripdeck/listing-search/internal/domain"
	"github.com/tripdeck/listing-search/internal/metrics"
)

// Config holds the orchestrator's cache TTLs.
type Config struct {
	// SearchTTL is the lifetime of a cached search result set
	SearchTTL time.Duration

	// DetailTTL is the lifetime of a cached single-listing fetch
	DetailTTL time.Duration
}

// DefaultConfig returns the default TTL configuration.
func DefaultConfig() Config {
	return Config{
		SearchTTL: cache.DefaultSearchTTL,
		DetailTTL: cache.DefaultDetailTTL,
	}
}

// SearchService is the search orchestrator: it derives the cache key, checks
// the domain's cache store, composes on a miss, populates the cache, records
// metrics, and returns a tagged (cached: true|false) result.
//
// Cache store failures during get or set never fail a request; they are
// logged, counted, and the call falls through to compute-and-return. Only a
// composer (backing query) failure propagates to the caller.
type SearchService struct {
	stores   map[domain.Domain]cache.Store
	composer *Composer
	recorder *metrics.Recorder
	cfg      Config
	log      zerolog.Logger
}

// NewSearchService creates the orchestrator.
// If cfg is nil, default TTLs are used.
func NewSearchService(stores map[domain.Domain]cache.Store, composer *Composer, recorder *metrics.Recorder, cfg *Config, log zerolog.Logger) *SearchService {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.SearchTTL > 0 {
			c.SearchTTL = cfg.SearchTTL
		}
		if cfg.DetailTTL > 0 {
			c.DetailTTL = cfg.DetailTTL
		}
	}

	return &SearchService{
		stores:   stores,
		composer: composer,
		recorder: recorder,
		cfg:      c,
		log:      log.With().Str("component", "search").Logger(),
	}
}

// Composer exposes the underlying composer (and its availability resolver).
func (s *SearchService) Composer() *Composer {
	return s.composer
}

// CarSearchResponse is a car search result tagged with its cache outcome.
type CarSearchResponse struct {
	// Cached indicates whether the payload was served from the cache
	Cached bool `json:"cached"`

	domain.CarSearchResult
}

// FlightSearchResponse is a flight search result tagged with its cache outcome.
type FlightSearchResponse struct {
	// Cached indicates whether the payload was served from the cache
	Cached bool `json:"cached"`

	domain.FlightSearchResult
}

// HotelSearchResponse is a hotel search result tagged with its cache outcome.
type HotelSearchResponse struct {
	// Cached indicates whether the payload was served from the cache
	Cached bool `json:"cached"`

	domain.HotelSearchResult
}

// SearchCars runs a car search through the cache layer.
func (s *SearchService) SearchCars(ctx context.Context, f domain.CarFilter) (*CarSearchResponse, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	result, cached, err := lookupOrCompute(ctx, s, domain.DomainCars, s.deriveKey(domain.DomainCars, f), s.cfg.SearchTTL,
		func(ctx context.Context) (domain.CarSearchResult, error) {
			r, err := s.composer.ComposeCars(ctx, f)
			if err != nil {
				return domain.CarSearchResult{}, err
			}
			return *r, nil
		})
	if err != nil {
		return nil, err
	}

	return &CarSearchResponse{Cached: cached, CarSearchResult: result}, nil
}

// SearchFlights runs a flight search through the cache layer.
func (s *SearchService) SearchFlights(ctx context.Context, f domain.FlightFilter) (*FlightSearchResponse, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	result, cached, err := lookupOrCompute(ctx, s, domain.DomainFlights, s.deriveKey(domain.DomainFlights, f), s.cfg.SearchTTL,
		func(ctx context.Context) (domain.FlightSearchResult, error) {
			r, err := s.composer.ComposeFlights(ctx, f)
			if err != nil {
				return domain.FlightSearchResult{}, err
			}
			return *r, nil
		})
	if err != nil {
		return nil, err
	}

	return &FlightSearchResponse{Cached: cached, FlightSearchResult: result}, nil
}

// SearchHotels runs a hotel search through the cache layer.
func (s *SearchService) SearchHotels(ctx context.Context, f domain.HotelFilter) (*HotelSearchResponse, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	result, cached, err := lookupOrCompute(ctx, s, domain.DomainHotels, s.deriveKey(domain.DomainHotels, f), s.cfg.SearchTTL,
		func(ctx context.Context) (domain.HotelSearchResult, error) {
			r, err := s.composer.ComposeHotels(ctx, f)
			if err != nil {
				return domain.HotelSearchResult{}, err
			}
			return *r, nil
		})
	if err != nil {
		return nil, err
	}

	return &HotelSearchResponse{Cached: cached, HotelSearchResult: result}, nil
}

// CarDetailResponse is a single car fetch tagged with its cache outcome.
type CarDetailResponse struct {
	Cached bool `json:"cached"`

	domain.CarListing
}

// FlightDetailResponse is a single flight fetch tagged with its cache outcome.
type FlightDetailResponse struct {
	Cached bool `json:"cached"`

	domain.FlightListing
}

// HotelDetailResponse is a single hotel fetch tagged with its cache outcome.
type HotelDetailResponse struct {
	Cached bool `json:"cached"`

	domain.HotelListing
}

// GetCar fetches a single car through the cache, bypassing the composer.
func (s *SearchService) GetCar(ctx context.Context, id string) (*CarDetailResponse, error) {
	listing, cached, err := lookupOrCompute(ctx, s, domain.DomainCars, cache.DetailKey(domain.DomainCars, id), s.cfg.DetailTTL,
		func(ctx context.Context) (domain.CarListing, error) {
			car, err := s.composer.repos.Cars.GetByID(ctx, id)
			if err != nil {
				return domain.CarListing{}, err
			}
			return *car, nil
		})
	if err != nil {
		return nil, err
	}
	return &CarDetailResponse{Cached: cached, CarListing: listing}, nil
}

// GetFlight fetches a single flight through the cache.
func (s *SearchService) GetFlight(ctx context.Context, id string) (*FlightDetailResponse, error) {
	listing, cached, err := lookupOrCompute(ctx, s, domain.DomainFlights, cache.DetailKey(domain.DomainFlights, id), s.cfg.DetailTTL,
		func(ctx context.Context) (domain.FlightListing, error) {
			flight, err := s.composer.repos.Flights.GetByID(ctx, id)
			if err != nil {
				return domain.FlightListing{}, err
			}
			return *flight, nil
		})
	if err != nil {
		return nil, err
	}
	return &FlightDetailResponse{Cached: cached, FlightListing: listing}, nil
}

// GetHotel fetches a single hotel through the cache.
func (s *SearchService) GetHotel(ctx context.Context, id string) (*HotelDetailResponse, error) {
	listing, cached, err := lookupOrCompute(ctx, s, domain.DomainHotels, cache.DetailKey(domain.DomainHotels, id), s.cfg.DetailTTL,
		func(ctx context.Context) (domain.HotelListing, error) {
			hotel, err := s.composer.repos.Hotels.GetByID(ctx, id)
			if err != nil {
				return domain.HotelListing{}, err
			}
			return *hotel, nil
		})
	if err != nil {
		return nil, err
	}
	return &HotelDetailResponse{Cached: cached, HotelListing: listing}, nil
}

// deriveKey derives the search cache key, degrading to "no caching" when
// derivation fails (an empty key skips the cache entirely).
func (s *SearchService) deriveKey(d domain.Domain, filter any) string {
	key, err := cache.DeriveKey(d, filter)
	if err != nil {
		s.log.Warn().Err(err).Str("domain", d.String()).Msg("Cache key derivation failed, skipping cache")
		return ""
	}
	return key
}

// lookupOrCompute is the orchestrator state machine shared by every search
// and detail path: cache check, compute on miss, cache write, metrics.
//
// Concurrent misses for the same key are not coalesced: each caller computes
// and writes the same idempotent snapshot, last write wins.
func lookupOrCompute[T any](ctx context.Context, s *SearchService, d domain.Domain, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, bool, error) {
	var zero T
	start := time.Now()
	store := s.stores[d]

	if store != nil && key != "" {
		raw, ok, err := store.Get(ctx, key)
		if err != nil {
			s.recorder.RecordCacheError(d)
			s.log.Warn().Err(err).Str("domain", d.String()).Msg("Cache get failed, computing uncached")
		}
		if ok {
			var value T
			if err := json.Unmarshal(raw, &value); err == nil {
				s.recorder.RecordHit(d, time.Since(start))
				return value, true, nil
			}
			// Undecodable entry: drop it and fall through to compute.
			_ = store.Del(ctx, key)
		}
	}

	value, err := compute(ctx)
	if err != nil {
		return zero, false, err
	}

	if store != nil && key != "" {
		raw, merr := json.Marshal(value)
		if merr != nil {
			s.recorder.RecordCacheError(d)
			s.log.Warn().Err(merr).Str("domain", d.String()).Msg("Cache payload encoding failed, skipping cache write")
		} else if err := store.Set(ctx, key, raw, ttl); err != nil {
			s.recorder.RecordCacheError(d)
			s.log.Warn().Err(err).Str("domain", d.String()).Msg("Cache set failed, returning uncached")
		}
	}

	s.recorder.RecordMiss(d, time.Since(start))
	return value, false, nil
}
