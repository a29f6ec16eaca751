// Package mysql implements the repository interfaces against the platform's
// MySQL system of record using gorm. All queries are read-only.
package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tripdeck/listing-search/internal/domain"
	"github.com/tripdeck/listing-search/internal/repository"
)

// Repository holds the shared gorm connection and hands out the per-domain
// repository implementations.
type Repository struct {
	db *gorm.DB
}

// New opens a MySQL connection and ensures the listing tables exist.
func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	// The booking platform owns the schema; AutoMigrate only creates the
	// tables when pointed at an empty development database.
	if err := db.AutoMigrate(
		&domain.CarListing{},
		&domain.FlightListing{},
		&domain.HotelListing{},
		&domain.AvailabilityBlock{},
	); err != nil {
		return nil, fmt.Errorf("migrate listing tables: %w", err)
	}

	return &Repository{db: db}, nil
}

// Listings returns the repository bundle for injection.
func (r *Repository) Listings() repository.Listings {
	return repository.Listings{
		Cars:         &carRepo{db: r.db},
		Flights:      &flightRepo{db: r.db},
		Hotels:       &hotelRepo{db: r.db},
		Availability: &availabilityRepo{db: r.db},
	}
}

// carRepo implements repository.CarRepository.
type carRepo struct {
	db *gorm.DB
}

func (r *carRepo) ListByLocation(ctx context.Context, location string) ([]domain.CarListing, error) {
	var cars []domain.CarListing
	err := r.db.WithContext(ctx).
		Where("location LIKE ?", "%"+location+"%").
		Where("availability_status = ? AND approval_status = ?", domain.StatusActive, domain.StatusApproved).
		Find(&cars).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list cars: %v", domain.ErrStoreQuery, err)
	}
	return cars, nil
}

func (r *carRepo) GetByID(ctx context.Context, id string) (*domain.CarListing, error) {
	var car domain.CarListing
	err := r.db.WithContext(ctx).First(&car, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get car %s: %v", domain.ErrStoreQuery, id, err)
	}
	return &car, nil
}

// flightRepo implements repository.FlightRepository.
type flightRepo struct {
	db *gorm.DB
}

func (r *flightRepo) ListByRoute(ctx context.Context, origin, destination, departureDate string) ([]domain.FlightListing, error) {
	var flights []domain.FlightListing
	err := r.db.WithContext(ctx).
		Where("origin = ? AND destination = ? AND departure_date = ?", origin, destination, departureDate).
		Where("availability_status = ? AND seats_available > 0", domain.StatusActive).
		Find(&flights).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list flights: %v", domain.ErrStoreQuery, err)
	}
	return flights, nil
}

func (r *flightRepo) GetByID(ctx context.Context, id string) (*domain.FlightListing, error) {
	var flight domain.FlightListing
	err := r.db.WithContext(ctx).First(&flight, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get flight %s: %v", domain.ErrStoreQuery, id, err)
	}
	return &flight, nil
}

// hotelRepo implements repository.HotelRepository.
type hotelRepo struct {
	db *gorm.DB
}

func (r *hotelRepo) ListByLocation(ctx context.Context, location string) ([]domain.HotelListing, error) {
	var hotels []domain.HotelListing
	err := r.db.WithContext(ctx).
		Where("location LIKE ?", "%"+location+"%").
		Where("availability_status = ? AND approval_status = ?", domain.StatusActive, domain.StatusApproved).
		Find(&hotels).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list hotels: %v", domain.ErrStoreQuery, err)
	}
	return hotels, nil
}

func (r *hotelRepo) GetByID(ctx context.Context, id string) (*domain.HotelListing, error) {
	var hotel domain.HotelListing
	err := r.db.WithContext(ctx).First(&hotel, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get hotel %s: %v", domain.ErrStoreQuery, id, err)
	}
	return &hotel, nil
}

// availabilityRepo implements repository.AvailabilityRepository.
type availabilityRepo struct {
	db *gorm.DB
}

func (r *availabilityRepo) BlocksForEntity(ctx context.Context, entityType domain.Domain, entityID string) ([]domain.AvailabilityBlock, error) {
	var blocks []domain.AvailabilityBlock
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Find(&blocks).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list blocks for %s/%s: %v", domain.ErrStoreQuery, entityType, entityID, err)
	}
	return blocks, nil
}

// BlockedEntityIDs pushes the interval-overlap test down into SQL:
// blocked_from <= until AND blocked_until >= from.
func (r *availabilityRepo) BlockedEntityIDs(ctx context.Context, entityType domain.Domain, from, until time.Time) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.AvailabilityBlock{}).
		Where("entity_type = ? AND blocked_from <= ? AND blocked_until >= ?", entityType, until, from).
		Distinct().
		Pluck("entity_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list blocked %s: %v", domain.ErrStoreQuery, entityType, err)
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
