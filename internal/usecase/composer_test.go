package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdeck/listing-search/internal/domain"
	memoryrepo "github.com/tripdeck/listing-search/internal/repository/memory"
	"github.com/tripdeck/listing-search/test/testutil"
)

// testCar builds a visible car listing for composer tests.
func testCar(id string, rate float64, opts ...func(*domain.CarListing)) domain.CarListing {
	car := domain.CarListing{
		ID:                 id,
		Brand:              "Toyota",
		Model:              "Corolla",
		Category:           "sedan",
		Transmission:       "automatic",
		Seats:              5,
		DailyRate:          rate,
		Location:           "Miami",
		Company:            "SunDrive",
		Rating:             4.0,
		AvailabilityStatus: domain.StatusActive,
		ApprovalStatus:     domain.StatusApproved,
	}
	for _, opt := range opts {
		opt(&car)
	}
	return car
}

// testFlight builds a visible flight listing for composer tests.
func testFlight(id string, price float64, durationMin, stops int) domain.FlightListing {
	dep := time.Date(2025, 12, 14, 8, 0, 0, 0, time.UTC)
	return domain.FlightListing{
		ID:                 id,
		Airline:            "TripAir",
		FlightNumber:       "TD-" + id,
		Origin:             "JFK",
		Destination:        "MIA",
		DepartureDate:      "2025-12-14",
		DepartureTime:      dep,
		ArrivalTime:        dep.Add(time.Duration(durationMin) * time.Minute),
		DurationMinutes:    durationMin,
		CabinClass:         "economy",
		Stops:              stops,
		Price:              price,
		SeatsAvailable:     10,
		AvailabilityStatus: domain.StatusActive,
	}
}

// testHotel builds a visible hotel listing for composer tests.
func testHotel(id string, nightly float64, stars int, amenities ...string) domain.HotelListing {
	return domain.HotelListing{
		ID:                 id,
		Name:               "Hotel " + id,
		Location:           "Miami",
		StarRating:         stars,
		Rating:             4.0,
		PricePerNight:      nightly,
		Amenities:          amenities,
		AvailabilityStatus: domain.StatusActive,
		ApprovalStatus:     domain.StatusApproved,
	}
}

func newComposer(repo *memoryrepo.Store) *Composer {
	return NewComposer(repo.Listings())
}

func TestComposeCarsPredicates(t *testing.T) {
	repo := memoryrepo.New()
	repo.AddCars(
		testCar("sedan-cheap", 40),
		testCar("suv-manual", 90, func(c *domain.CarListing) {
			c.Category = "suv"
			c.Transmission = "manual"
			c.Company = "CoastCars"
		}),
		testCar("van-7seats", 70, func(c *domain.CarListing) {
			c.Category = "van"
			c.Seats = 7
		}),
		testCar("unapproved", 25, func(c *domain.CarListing) {
			c.ApprovalStatus = "pending"
		}),
	)
	c := newComposer(repo)
	ctx := context.Background()

	tests := []struct {
		name    string
		filter  domain.CarFilter
		wantIDs []string
	}{
		{
			name:    "no predicates returns all visible sorted by price",
			filter:  domain.CarFilter{Location: "Miami"},
			wantIDs: []string{"sedan-cheap", "van-7seats", "suv-manual"},
		},
		{
			name:    "category",
			filter:  domain.CarFilter{Location: "Miami", Category: "suv"},
			wantIDs: []string{"suv-manual"},
		},
		{
			name:    "transmission",
			filter:  domain.CarFilter{Location: "Miami", Transmission: "manual"},
			wantIDs: []string{"suv-manual"},
		},
		{
			name:    "min seats",
			filter:  domain.CarFilter{Location: "Miami", MinSeats: testutil.Ptr(6)},
			wantIDs: []string{"van-7seats"},
		},
		{
			name:    "company",
			filter:  domain.CarFilter{Location: "Miami", Company: "CoastCars"},
			wantIDs: []string{"suv-manual"},
		},
		{
			name:    "price window",
			filter:  domain.CarFilter{Location: "Miami", MinPrice: testutil.Ptr(50.0), MaxPrice: testutil.Ptr(80.0)},
			wantIDs: []string{"van-7seats"},
		},
		{
			name:    "no matches yields empty page",
			filter:  domain.CarFilter{Location: "Miami", Category: "luxury"},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := c.ComposeCars(ctx, tt.filter)
			require.NoError(t, err)

			require.NotNil(t, result.Cars, "empty result must serialize as [], not null")
			ids := make([]string, len(result.Cars))
			for i, car := range result.Cars {
				ids[i] = car.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, len(tt.wantIDs), result.Page.Total)
		})
	}
}

func TestComposeCarsSorting(t *testing.T) {
	repo := memoryrepo.New()
	repo.AddCars(
		testCar("a", 90, func(c *domain.CarListing) { c.Brand = "Volvo"; c.Rating = 4.9 }),
		testCar("b", 40, func(c *domain.CarListing) { c.Brand = "Audi"; c.Rating = 3.5 }),
		testCar("c", 70, func(c *domain.CarListing) { c.Brand = "Mazda"; c.Rating = 4.2 }),
	)
	c := newComposer(repo)
	ctx := context.Background()

	tests := []struct {
		name    string
		sortBy  string
		order   domain.SortOrder
		wantIDs []string
	}{
		{name: "price asc default", wantIDs: []string{"b", "c", "a"}},
		{name: "price desc", sortBy: "price", order: domain.SortDesc, wantIDs: []string{"a", "c", "b"}},
		{name: "rating desc", sortBy: "rating", order: domain.SortDesc, wantIDs: []string{"a", "c", "b"}},
		{name: "brand asc", sortBy: "brand", wantIDs: []string{"b", "c", "a"}},
		{name: "unsupported field falls back to price", sortBy: "departure", wantIDs: []string{"b", "c", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := c.ComposeCars(ctx, domain.CarFilter{
				Location:  "Miami",
				SortBy:    tt.sortBy,
				SortOrder: tt.order,
			})
			require.NoError(t, err)

			ids := make([]string, len(result.Cars))
			for i, car := range result.Cars {
				ids[i] = car.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestComposeCarsPagination(t *testing.T) {
	repo := memoryrepo.New()
	for i := 0; i < 25; i++ {
		repo.AddCars(testCar(fmt.Sprintf("car-%02d", i), float64(10+i)))
	}
	c := newComposer(repo)
	ctx := context.Background()

	t.Run("first page", func(t *testing.T) {
		result, err := c.ComposeCars(ctx, domain.CarFilter{
			Location:   "Miami",
			Pagination: domain.Pagination{Limit: 10, Offset: 0},
		})
		require.NoError(t, err)

		assert.Len(t, result.Cars, 10)
		assert.Equal(t, 25, result.Page.Total)
		assert.True(t, result.Page.HasMore)
		assert.Equal(t, "car-00", result.Cars[0].ID)
	})

	t.Run("last partial page", func(t *testing.T) {
		result, err := c.ComposeCars(ctx, domain.CarFilter{
			Location:   "Miami",
			Pagination: domain.Pagination{Limit: 10, Offset: 20},
		})
		require.NoError(t, err)

		assert.Len(t, result.Cars, 5)
		assert.False(t, result.Page.HasMore)
		assert.Equal(t, "car-20", result.Cars[0].ID)
	})

	t.Run("offset past the end", func(t *testing.T) {
		result, err := c.ComposeCars(ctx, domain.CarFilter{
			Location:   "Miami",
			Pagination: domain.Pagination{Limit: 10, Offset: 100},
		})
		require.NoError(t, err)

		assert.NotNil(t, result.Cars)
		assert.Empty(t, result.Cars)
		assert.Equal(t, 25, result.Page.Total)
		assert.False(t, result.Page.HasMore)
	})

	t.Run("boundary offset plus limit equals total", func(t *testing.T) {
		result, err := c.ComposeCars(ctx, domain.CarFilter{
			Location:   "Miami",
			Pagination: domain.Pagination{Limit: 5, Offset: 20},
		})
		require.NoError(t, err)

		assert.Len(t, result.Cars, 5)
		assert.False(t, result.Page.HasMore, "20+5 == 25 leaves no further page")
	})
}

func TestComposeCarsAvailability(t *testing.T) {
	repo := memoryrepo.New()
	repo.AddCars(
		testCar("free", 50),
		testCar("blocked", 60),
	)
	repo.AddBlocks(domain.AvailabilityBlock{
		ID:           "blk-1",
		EntityType:   domain.DomainCars,
		EntityID:     "blocked",
		BlockedFrom:  testutil.MustParseDate(t, "2025-12-10"),
		BlockedUntil: testutil.MustParseDate(t, "2025-12-15"),
		Reason:       domain.BlockReasonBooked,
		BookingID:    "bkg-77",
	})
	c := newComposer(repo)
	ctx := context.Background()

	t.Run("overlapping range excludes blocked car", func(t *testing.T) {
		result, err := c.ComposeCars(ctx, domain.CarFilter{
			Location:    "Miami",
			PickupDate:  "2025-12-14",
			DropoffDate: "2025-12-17",
		})
		require.NoError(t, err)

		require.Len(t, result.Cars, 1)
		assert.Equal(t, "free", result.Cars[0].ID)
	})

	t.Run("disjoint range keeps both", func(t *testing.T) {
		result, err := c.ComposeCars(ctx, domain.CarFilter{
			Location:    "Miami",
			PickupDate:  "2025-12-20",
			DropoffDate: "2025-12-22",
		})
		require.NoError(t, err)
		assert.Len(t, result.Cars, 2)
	})

	t.Run("no dates skips availability entirely", func(t *testing.T) {
		result, err := c.ComposeCars(ctx, domain.CarFilter{Location: "Miami"})
		require.NoError(t, err)
		assert.Len(t, result.Cars, 2)
	})
}

func TestComposeCarsDerivedFields(t *testing.T) {
	repo := memoryrepo.New()
	repo.AddCars(testCar("car-1", 45))
	c := newComposer(repo)

	result, err := c.ComposeCars(context.Background(), domain.CarFilter{
		Location:    "Miami",
		PickupDate:  "2025-12-20",
		DropoffDate: "2025-12-23",
	})
	require.NoError(t, err)

	require.Len(t, result.Cars, 1)
	assert.Equal(t, 3, result.Cars[0].RentalDays)
	assert.Equal(t, 135.0, result.Cars[0].TotalPrice)
}

func TestComposeFlights(t *testing.T) {
	repo := memoryrepo.New()
	direct := testFlight("direct", 200, 180, 0)
	oneStop := testFlight("onestop", 150, 280, 1)
	business := testFlight("biz", 450, 180, 0)
	business.CabinClass = "business"
	soldOut := testFlight("soldout", 99, 180, 0)
	soldOut.SeatsAvailable = 0
	repo.AddFlights(direct, oneStop, business, soldOut)

	c := newComposer(repo)
	ctx := context.Background()
	base := domain.FlightFilter{Origin: "JFK", Destination: "MIA", DepartureDate: "2025-12-14"}

	t.Run("sold out flights never appear", func(t *testing.T) {
		result, err := c.ComposeFlights(ctx, base)
		require.NoError(t, err)

		assert.Len(t, result.Flights, 3)
		for _, f := range result.Flights {
			assert.NotEqual(t, "soldout", f.ID)
		}
	})

	t.Run("direct only", func(t *testing.T) {
		f := base
		f.DirectOnly = true
		result, err := c.ComposeFlights(ctx, f)
		require.NoError(t, err)

		assert.Len(t, result.Flights, 2)
		for _, got := range result.Flights {
			assert.Zero(t, got.Stops)
		}
	})

	t.Run("cabin class", func(t *testing.T) {
		f := base
		f.CabinClass = "business"
		result, err := c.ComposeFlights(ctx, f)
		require.NoError(t, err)

		require.Len(t, result.Flights, 1)
		assert.Equal(t, "biz", result.Flights[0].ID)
	})

	t.Run("sort by duration", func(t *testing.T) {
		f := base
		f.SortBy = "duration"
		result, err := c.ComposeFlights(ctx, f)
		require.NoError(t, err)

		require.Len(t, result.Flights, 3)
		assert.Equal(t, 180, result.Flights[0].DurationMinutes)
		assert.Equal(t, 280, result.Flights[2].DurationMinutes)
	})

	t.Run("unknown route yields empty list", func(t *testing.T) {
		f := base
		f.Destination = "LAX"
		result, err := c.ComposeFlights(ctx, f)
		require.NoError(t, err)

		assert.NotNil(t, result.Flights)
		assert.Empty(t, result.Flights)
		assert.Zero(t, result.Page.Total)
	})
}

func TestComposeFlightsRoundTrip(t *testing.T) {
	repo := memoryrepo.New()
	repo.AddFlights(
		testFlight("out-1", 189, 195, 0),
		testFlight("out-2", 159, 270, 1),
	)
	ret := testFlight("ret-1", 175, 195, 0)
	ret.Origin, ret.Destination = "MIA", "JFK"
	ret.DepartureDate = "2025-12-18"
	repo.AddFlights(ret)

	c := newComposer(repo)

	result, err := c.ComposeFlights(context.Background(), domain.FlightFilter{
		Origin:        "JFK",
		Destination:   "MIA",
		DepartureDate: "2025-12-14",
		ReturnDate:    "2025-12-18",
	})
	require.NoError(t, err)

	assert.True(t, result.IsRoundTrip)
	assert.Len(t, result.Flights, 2)
	require.Len(t, result.ReturnFlights, 1)
	assert.Equal(t, "ret-1", result.ReturnFlights[0].ID)

	require.NotNil(t, result.ReturnPage)
	assert.Equal(t, 1, result.ReturnPage.Total)
	assert.Equal(t, 2, result.Page.Total)
}

func TestComposeHotels(t *testing.T) {
	repo := memoryrepo.New()
	repo.AddHotels(
		testHotel("budget", 80, 2, "wifi"),
		testHotel("mid", 150, 4, "wifi", "pool"),
		testHotel("lux", 340, 5, "wifi", "pool", "spa"),
	)
	c := newComposer(repo)
	ctx := context.Background()

	t.Run("amenities must all be present", func(t *testing.T) {
		result, err := c.ComposeHotels(ctx, domain.HotelFilter{
			Location:  "Miami",
			Amenities: []string{"wifi", "pool"},
		})
		require.NoError(t, err)

		assert.Len(t, result.Hotels, 2)
		for _, h := range result.Hotels {
			assert.NotEqual(t, "budget", h.ID)
		}
	})

	t.Run("min star rating", func(t *testing.T) {
		result, err := c.ComposeHotels(ctx, domain.HotelFilter{
			Location:      "Miami",
			MinStarRating: testutil.Ptr(5),
		})
		require.NoError(t, err)

		require.Len(t, result.Hotels, 1)
		assert.Equal(t, "lux", result.Hotels[0].ID)
	})

	t.Run("sort by stars descending", func(t *testing.T) {
		result, err := c.ComposeHotels(ctx, domain.HotelFilter{
			Location:  "Miami",
			SortBy:    "stars",
			SortOrder: domain.SortDesc,
		})
		require.NoError(t, err)

		require.Len(t, result.Hotels, 3)
		assert.Equal(t, "lux", result.Hotels[0].ID)
		assert.Equal(t, "budget", result.Hotels[2].ID)
	})
}

func TestComposeHotelsAvailability(t *testing.T) {
	repo := memoryrepo.New()
	repo.AddHotels(
		testHotel("open", 100, 3, "wifi"),
		testHotel("full", 120, 4, "wifi"),
	)
	repo.AddBlocks(domain.AvailabilityBlock{
		ID:           "blk-h1",
		EntityType:   domain.DomainHotels,
		EntityID:     "full",
		BlockedFrom:  testutil.MustParseDate(t, "2025-12-24"),
		BlockedUntil: testutil.MustParseDate(t, "2025-12-26"),
		Reason:       domain.BlockReasonBooked,
	})
	c := newComposer(repo)

	result, err := c.ComposeHotels(context.Background(), domain.HotelFilter{
		Location: "Miami",
		CheckIn:  "2025-12-23",
		CheckOut: "2025-12-25",
	})
	require.NoError(t, err)

	require.Len(t, result.Hotels, 1)
	assert.Equal(t, "open", result.Hotels[0].ID)
}

func TestResolverIsAvailable(t *testing.T) {
	repo := memoryrepo.New()
	repo.AddBlocks(domain.AvailabilityBlock{
		ID:           "blk-1",
		EntityType:   domain.DomainCars,
		EntityID:     "car-1",
		BlockedFrom:  testutil.MustParseDate(t, "2025-12-10"),
		BlockedUntil: testutil.MustParseDate(t, "2025-12-12"),
		Reason:       domain.BlockReasonMaintenance,
	})
	resolver := newComposer(repo).Resolver()
	ctx := context.Background()

	available, err := resolver.IsAvailable(ctx, domain.DomainCars, "car-1",
		testutil.MustParseDate(t, "2025-12-11"), testutil.MustParseDate(t, "2025-12-14"))
	require.NoError(t, err)
	assert.False(t, available)

	available, err = resolver.IsAvailable(ctx, domain.DomainCars, "car-1",
		testutil.MustParseDate(t, "2025-12-13"), testutil.MustParseDate(t, "2025-12-14"))
	require.NoError(t, err)
	assert.True(t, available)

	// A different entity with no blocks is always available.
	available, err = resolver.IsAvailable(ctx, domain.DomainCars, "car-2",
		testutil.MustParseDate(t, "2025-12-11"), testutil.MustParseDate(t, "2025-12-14"))
	require.NoError(t, err)
	assert.True(t, available)
}
