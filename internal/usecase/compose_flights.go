package usecase

import (
	"context"

	"github.com/tripdeck/listing-search/internal/domain"
)

// ComposeFlights builds the result set for a flight search. When a return
// date is supplied the composer runs two independent compositions, one for
// the outbound leg and one for the reversed return leg, and tags the result
// as a round trip instead of merging the lists. Round-trip total pricing is
// the caller's concern.
func (c *Composer) ComposeFlights(ctx context.Context, f domain.FlightFilter) (*domain.FlightSearchResult, error) {
	f.SetDefaults()

	outbound, outPage, err := c.composeLeg(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &domain.FlightSearchResult{
		IsRoundTrip: f.IsRoundTrip(),
		Flights:     outbound,
		Page:        outPage,
	}

	if f.IsRoundTrip() {
		returning, retPage, err := c.composeLeg(ctx, f.Reversed())
		if err != nil {
			return nil, err
		}
		result.ReturnFlights = returning
		result.ReturnPage = &retPage
	}

	return result, nil
}

// composeLeg composes a single directional flight list.
func (c *Composer) composeLeg(ctx context.Context, f domain.FlightFilter) ([]domain.FlightListing, domain.Page, error) {
	flights, err := c.repos.Flights.ListByRoute(ctx, f.Origin, f.Destination, f.DepartureDate)
	if err != nil {
		return nil, domain.Page{}, err
	}

	matched := make([]domain.FlightListing, 0, len(flights))
	for _, flight := range flights {
		if matchesFlight(&f, flight) {
			matched = append(matched, flight)
		}
	}

	sortFlights(matched, f.SortBy, f.SortOrder)

	pageItems, page := paginate(matched, f.Limit, f.Offset)
	return pageItems, page, nil
}

// matchesFlight applies the optional flight filter predicates.
func matchesFlight(f *domain.FlightFilter, flight domain.FlightListing) bool {
	if f.MinPrice != nil && flight.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && flight.Price > *f.MaxPrice {
		return false
	}
	if f.Airline != "" && flight.Airline != f.Airline {
		return false
	}
	if f.CabinClass != "" && flight.CabinClass != f.CabinClass {
		return false
	}
	if f.DirectOnly && flight.Stops > 0 {
		return false
	}
	return true
}

// sortFlights orders flights by the resolved sort field and direction.
func sortFlights(flights []domain.FlightListing, field string, order domain.SortOrder) {
	switch domain.ResolveSortField(domain.DomainFlights, field) {
	case domain.SortByDuration:
		sortSlice(flights, order, func(a, b domain.FlightListing) bool {
			return a.DurationMinutes < b.DurationMinutes
		})
	case domain.SortByDeparture:
		sortSlice(flights, order, func(a, b domain.FlightListing) bool {
			return a.DepartureTime.Before(b.DepartureTime)
		})
	default:
		sortSlice(flights, order, func(a, b domain.FlightListing) bool {
			return a.Price < b.Price
		})
	}
}
