package usecase

import (
	"context"

	"github.com/tripdeck/listing-search/internal/domain"
)

// ComposeHotels builds the result set for a hotel search: location scope
// fetch, optional predicates, stay-window availability set-difference,
// sorting, and pagination.
func (c *Composer) ComposeHotels(ctx context.Context, f domain.HotelFilter) (*domain.HotelSearchResult, error) {
	f.SetDefaults()

	hotels, err := c.repos.Hotels.ListByLocation(ctx, f.Location)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.HotelListing, 0, len(hotels))
	for _, hotel := range hotels {
		if matchesHotel(&f, hotel) {
			matched = append(matched, hotel)
		}
	}

	if from, until, ok := f.DateRange(); ok {
		blocked, err := c.resolver.BlockedSet(ctx, domain.DomainHotels, from, until)
		if err != nil {
			return nil, err
		}
		matched = subtractByID(matched, blocked, func(hotel domain.HotelListing) string { return hotel.ID })
	}

	sortHotels(matched, f.SortBy, f.SortOrder)

	pageItems, page := paginate(matched, f.Limit, f.Offset)

	return &domain.HotelSearchResult{
		Hotels: pageItems,
		Page:   page,
	}, nil
}

// matchesHotel applies the optional hotel filter predicates.
func matchesHotel(f *domain.HotelFilter, hotel domain.HotelListing) bool {
	if f.MinPrice != nil && hotel.PricePerNight < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && hotel.PricePerNight > *f.MaxPrice {
		return false
	}
	if f.MinStarRating != nil && hotel.StarRating < *f.MinStarRating {
		return false
	}
	if !hotel.HasAmenities(f.Amenities) {
		return false
	}
	return true
}

// sortHotels orders hotels by the resolved sort field and direction.
func sortHotels(hotels []domain.HotelListing, field string, order domain.SortOrder) {
	switch domain.ResolveSortField(domain.DomainHotels, field) {
	case domain.SortByRating:
		sortSlice(hotels, order, func(a, b domain.HotelListing) bool {
			return a.Rating < b.Rating
		})
	case domain.SortByStars:
		sortSlice(hotels, order, func(a, b domain.HotelListing) bool {
			return a.StarRating < b.StarRating
		})
	default:
		sortSlice(hotels, order, func(a, b domain.HotelListing) bool {
			return a.PricePerNight < b.PricePerNight
		})
	}
}
