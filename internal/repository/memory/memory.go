// Package memory implements the repository interfaces over in-process
// slices. It backs development mode (no MySQL required) and doubles as the
// fixture source for composer and orchestrator tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/tripdeck/listing-search/internal/domain"
	"github.com/tripdeck/listing-search/internal/repository"
)

// Store holds the in-memory listing data.
type Store struct {
	mu      sync.RWMutex
	cars    []domain.CarListing
	flights []domain.FlightListing
	hotels  []domain.HotelListing
	blocks  []domain.AvailabilityBlock

	// failWith, when set, makes every read fail. Tests use it to simulate
	// backing store outages.
	failWith error
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// Listings returns the repository bundle for injection.
func (s *Store) Listings() repository.Listings {
	return repository.Listings{
		Cars:         &carRepo{s},
		Flights:      &flightRepo{s},
		Hotels:       &hotelRepo{s},
		Availability: &availabilityRepo{s},
	}
}

// AddCars appends car listings.
func (s *Store) AddCars(cars ...domain.CarListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cars = append(s.cars, cars...)
}

// AddFlights appends flight listings.
func (s *Store) AddFlights(flights ...domain.FlightListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flights = append(s.flights, flights...)
}

// AddHotels appends hotel listings.
func (s *Store) AddHotels(hotels ...domain.HotelListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hotels = append(s.hotels, hotels...)
}

// AddBlocks appends availability blocks.
func (s *Store) AddBlocks(blocks ...domain.AvailabilityBlock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = append(s.blocks, blocks...)
}

// SetError makes every subsequent read return err. Pass nil to clear.
func (s *Store) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

func (s *Store) readErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failWith
}

// carRepo implements repository.CarRepository.
type carRepo struct {
	store *Store
}

func (r *carRepo) ListByLocation(_ context.Context, location string) ([]domain.CarListing, error) {
	if err := r.store.readErr(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	needle := strings.ToLower(location)
	var out []domain.CarListing
	for _, c := range r.store.cars {
		if c.IsVisible() && strings.Contains(strings.ToLower(c.Location), needle) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *carRepo) GetByID(_ context.Context, id string) (*domain.CarListing, error) {
	if err := r.store.readErr(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, c := range r.store.cars {
		if c.ID == id {
			car := c
			return &car, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

// flightRepo implements repository.FlightRepository.
type flightRepo struct {
	store *Store
}

func (r *flightRepo) ListByRoute(_ context.Context, origin, destination, departureDate string) ([]domain.FlightListing, error) {
	if err := r.store.readErr(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []domain.FlightListing
	for _, f := range r.store.flights {
		if f.IsVisible() && f.Origin == origin && f.Destination == destination && f.DepartureDate == departureDate {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *flightRepo) GetByID(_ context.Context, id string) (*domain.FlightListing, error) {
	if err := r.store.readErr(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, f := range r.store.flights {
		if f.ID == id {
			flight := f
			return &flight, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

// hotelRepo implements repository.HotelRepository.
type hotelRepo struct {
	store *Store
}

func (r *hotelRepo) ListByLocation(_ context.Context, location string) ([]domain.HotelListing, error) {
	if err := r.store.readErr(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	needle := strings.ToLower(location)
	var out []domain.HotelListing
	for _, h := range r.store.hotels {
		if h.IsVisible() && strings.Contains(strings.ToLower(h.Location), needle) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *hotelRepo) GetByID(_ context.Context, id string) (*domain.HotelListing, error) {
	if err := r.store.readErr(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, h := range r.store.hotels {
		if h.ID == id {
			hotel := h
			return &hotel, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

// availabilityRepo implements repository.AvailabilityRepository.
type availabilityRepo struct {
	store *Store
}

func (r *availabilityRepo) BlocksForEntity(_ context.Context, entityType domain.Domain, entityID string) ([]domain.AvailabilityBlock, error) {
	if err := r.store.readErr(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []domain.AvailabilityBlock
	for _, b := range r.store.blocks {
		if b.EntityType == entityType && b.EntityID == entityID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *availabilityRepo) BlockedEntityIDs(_ context.Context, entityType domain.Domain, from, until time.Time) ([]string, error) {
	if err := r.store.readErr(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	seen := make(map[string]struct{})
	var ids []string
	for _, b := range r.store.blocks {
		if b.EntityType != entityType || !b.Overlaps(from, until) {
			continue
		}
		if _, ok := seen[b.EntityID]; ok {
			continue
		}
		seen[b.EntityID] = struct{}{}
		ids = append(ids, b.EntityID)
	}
	return ids, nil
}

// Compile-time interface checks.
var (
	_ repository.CarRepository          = (*carRepo)(nil)
	_ repository.FlightRepository       = (*flightRepo)(nil)
	_ repository.HotelRepository        = (*hotelRepo)(nil)
	_ repository.AvailabilityRepository = (*availabilityRepo)(nil)
)
