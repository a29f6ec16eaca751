// Package repository defines the read-only interfaces to the platform's
// system of record. The listing search core never owns schema or writes;
// bookings and holds are created elsewhere and only read here.
package repository

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

import (
	"context"
	"time"

	"github.com/tripdeck/listing-search/internal/domain"
)

// CarRepository reads car listings.
type CarRepository interface {
	// ListByLocation returns visible cars whose location contains the
	// given substring (case-insensitive).
	ListByLocation(ctx context.Context, location string) ([]domain.CarListing, error)

	// GetByID returns a single car or domain.ErrListingNotFound.
	GetByID(ctx context.Context, id string) (*domain.CarListing, error)
}

// FlightRepository reads flight listings.
type FlightRepository interface {
	// ListByRoute returns visible flights matching the exact
	// origin/destination pair on the given service date.
	ListByRoute(ctx context.Context, origin, destination, departureDate string) ([]domain.FlightListing, error)

	// GetByID returns a single flight or domain.ErrListingNotFound.
	GetByID(ctx context.Context, id string) (*domain.FlightListing, error)
}

// HotelRepository reads hotel listings.
type HotelRepository interface {
	// ListByLocation returns visible hotels whose location contains the
	// given substring (case-insensitive).
	ListByLocation(ctx context.Context, location string) ([]domain.HotelListing, error)

	// GetByID returns a single hotel or domain.ErrListingNotFound.
	GetByID(ctx context.Context, id string) (*domain.HotelListing, error)
}

// AvailabilityRepository reads availability blocks owned by the booking
// subsystem.
type AvailabilityRepository interface {
	// BlocksForEntity returns every block attached to one entity.
	BlocksForEntity(ctx context.Context, entityType domain.Domain, entityID string) ([]domain.AvailabilityBlock, error)

	// BlockedEntityIDs returns the ids of all entities of the given type
	// with at least one block overlapping [from, until]. Composers use
	// this as a set-difference instead of per-entity resolver calls.
	BlockedEntityIDs(ctx context.Context, entityType domain.Domain, from, until time.Time) ([]string, error)
}

// Listings bundles all repository interfaces for injection.
type Listings struct {
	Cars         CarRepository
	Flights      FlightRepository
	Hotels       HotelRepository
	Availability AvailabilityRepository
}
