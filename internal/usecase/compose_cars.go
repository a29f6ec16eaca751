package usecase

import (
	"context"

	"github.com/tripdeck/listing-search/internal/domain"
)

// ComposeCars builds the result set for a car search: location scope fetch,
// optional predicates, availability set-difference, sorting, pagination, and
// the query-time derived pricing fields.
func (c *Composer) ComposeCars(ctx context.Context, f domain.CarFilter) (*domain.CarSearchResult, error) {
	f.SetDefaults()

	cars, err := c.repos.Cars.ListByLocation(ctx, f.Location)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.CarListing, 0, len(cars))
	for _, car := range cars {
		if matchesCar(&f, car) {
			matched = append(matched, car)
		}
	}

	if from, until, ok := f.DateRange(); ok {
		blocked, err := c.resolver.BlockedSet(ctx, domain.DomainCars, from, until)
		if err != nil {
			return nil, err
		}
		matched = subtractByID(matched, blocked, func(car domain.CarListing) string { return car.ID })
	}

	sortCars(matched, f.SortBy, f.SortOrder)

	pageItems, page := paginate(matched, f.Limit, f.Offset)

	rentalDays := f.RentalDays()
	results := make([]domain.CarResult, len(pageItems))
	for i, car := range pageItems {
		results[i] = domain.CarResult{
			CarListing: car,
			RentalDays: rentalDays,
			TotalPrice: car.DailyRate * float64(rentalDays),
		}
	}

	return &domain.CarSearchResult{
		Cars: results,
		Page: page,
	}, nil
}

// matchesCar applies the optional car filter predicates. Unset fields match
// everything.
func matchesCar(f *domain.CarFilter, car domain.CarListing) bool {
	if f.MinPrice != nil && car.DailyRate < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && car.DailyRate > *f.MaxPrice {
		return false
	}
	if f.Category != "" && car.Category != f.Category {
		return false
	}
	if f.Transmission != "" && car.Transmission != f.Transmission {
		return false
	}
	if f.MinSeats != nil && car.Seats < *f.MinSeats {
		return false
	}
	if f.Company != "" && car.Company != f.Company {
		return false
	}
	return true
}

// sortCars orders cars by the resolved sort field and direction.
func sortCars(cars []domain.CarListing, field string, order domain.SortOrder) {
	switch domain.ResolveSortField(domain.DomainCars, field) {
	case domain.SortByRating:
		sortSlice(cars, order, func(a, b domain.CarListing) bool {
			return a.Rating < b.Rating
		})
	case domain.SortByBrand:
		sortSlice(cars, order, func(a, b domain.CarListing) bool {
			return a.Brand < b.Brand
		})
	default:
		sortSlice(cars, order, func(a, b domain.CarListing) bool {
			return a.DailyRate < b.DailyRate
		})
	}
}

// subtractByID removes items whose id is in the blocked set.
func subtractByID[T any](items []T, blocked map[string]struct{}, id func(T) string) []T {
	if len(blocked) == 0 {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := blocked[id(item)]; !ok {
			out = append(out, item)
		}
	}
	return out
}
