package usecase

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tripdeck/listing-search/internal/cache"
	"github.com/tripdeck/listing-search/internal/domain"
	"github.com/tripdeck/listing-search/internal/metrics"
	"github.com/tripdeck/listing-search/internal/repository"
)

// mockRepos builds a repository bundle from gomock mocks.
func mockRepos(ctrl *gomock.Controller) (repository.Listings, *repository.MockCarRepository, *repository.MockFlightRepository) {
	cars := repository.NewMockCarRepository(ctrl)
	flights := repository.NewMockFlightRepository(ctrl)
	hotels := repository.NewMockHotelRepository(ctrl)
	availability := repository.NewMockAvailabilityRepository(ctrl)

	return repository.Listings{
		Cars:         cars,
		Flights:      flights,
		Hotels:       hotels,
		Availability: availability,
	}, cars, flights
}

func newMockedService(repos repository.Listings, recorder *metrics.Recorder) *SearchService {
	stores := map[domain.Domain]cache.Store{
		domain.DomainCars:    cache.NewMemoryStore(),
		domain.DomainFlights: cache.NewMemoryStore(),
		domain.DomainHotels:  cache.NewMemoryStore(),
	}
	return NewSearchService(stores, NewComposer(repos), recorder, nil, zerolog.Nop())
}

func TestGetCarServesSecondFetchFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repos, cars, _ := mockRepos(ctrl)
	recorder := metrics.NewRecorder(nil, nil)
	service := newMockedService(repos, recorder)

	listing := &domain.CarListing{
		ID:                 "car-1",
		Brand:              "Toyota",
		DailyRate:          45,
		AvailabilityStatus: domain.StatusActive,
		ApprovalStatus:     domain.StatusApproved,
	}

	// The backing store is queried exactly once; the second fetch must be
	// answered by the detail cache.
	cars.EXPECT().GetByID(gomock.Any(), "car-1").Return(listing, nil).Times(1)

	first, err := service.GetCar(context.Background(), "car-1")
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "Toyota", first.Brand)

	second, err := service.GetCar(context.Background(), "car-1")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, "Toyota", second.Brand)

	stats := recorder.Snapshot().Domains[domain.DomainCars.String()]
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestGetCarNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repos, cars, _ := mockRepos(ctrl)
	service := newMockedService(repos, metrics.NewRecorder(nil, nil))

	cars.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, domain.ErrListingNotFound)

	_, err := service.GetCar(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestGetFlightStoreErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repos, _, flights := mockRepos(ctrl)
	service := newMockedService(repos, metrics.NewRecorder(nil, nil))

	flights.EXPECT().GetByID(gomock.Any(), "f-1").
		Return(nil, fmt.Errorf("%w: deadlock", domain.ErrStoreQuery))

	_, err := service.GetFlight(context.Background(), "f-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreQuery)
}

func TestSearchCarsIdenticalFiltersShareEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repos, cars, _ := mockRepos(ctrl)
	recorder := metrics.NewRecorder(nil, nil)
	service := newMockedService(repos, recorder)

	listing := domain.CarListing{
		ID:                 "car-1",
		Location:           "Miami",
		DailyRate:          45,
		AvailabilityStatus: domain.StatusActive,
		ApprovalStatus:     domain.StatusApproved,
	}

	// One composition serves both logically identical searches even though
	// the filter structs were built separately.
	cars.EXPECT().ListByLocation(gomock.Any(), "Miami").
		Return([]domain.CarListing{listing}, nil).Times(1)

	first, err := service.SearchCars(context.Background(), domain.CarFilter{Location: "Miami"})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := service.SearchCars(context.Background(), domain.CarFilter{Location: "Miami"})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Cars, second.Cars)
}

func TestSearchCarsDistinctFiltersComputeSeparately(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repos, cars, _ := mockRepos(ctrl)
	service := newMockedService(repos, metrics.NewRecorder(nil, nil))

	cars.EXPECT().ListByLocation(gomock.Any(), "Miami").Return(nil, nil).Times(1)
	cars.EXPECT().ListByLocation(gomock.Any(), "Orlando").Return(nil, nil).Times(1)

	_, err := service.SearchCars(context.Background(), domain.CarFilter{Location: "Miami"})
	require.NoError(t, err)

	_, err = service.SearchCars(context.Background(), domain.CarFilter{Location: "Orlando"})
	require.NoError(t, err)
}

func TestUnencodableResultCountsCacheError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repos, _, _ := mockRepos(ctrl)
	recorder := metrics.NewRecorder(nil, nil)
	service := newMockedService(repos, recorder)

	// math.Inf has no JSON encoding, so the cache write is skipped. The
	// failure still counts as a cache error and the result is served.
	value, cached, err := lookupOrCompute(context.Background(), service, domain.DomainCars, "car_search:unencodable", time.Minute,
		func(context.Context) (float64, error) {
			return math.Inf(1), nil
		})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, math.Inf(1), value)

	stats := recorder.Snapshot().Domains[domain.DomainCars.String()]
	assert.Equal(t, int64(1), stats.CacheErrors)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestDefaultConfigTTLs(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cache.DefaultSearchTTL, cfg.SearchTTL)
	assert.Equal(t, cache.DefaultDetailTTL, cfg.DetailTTL)
}
