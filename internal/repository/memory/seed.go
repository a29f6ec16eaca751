package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/tripdeck/listing-search/internal/domain"
)

// Seeded returns a Store pre-loaded with demo listings for development mode.
func Seeded() *Store {
	s := New()

	carIDs := make([]string, 4)
	for i := range carIDs {
		carIDs[i] = uuid.New().String()
	}

	s.AddCars(
		demoCar(carIDs[0], "Toyota", "Corolla", "sedan", "automatic", 5, 45, "Miami", "SunDrive", 4.5),
		demoCar(carIDs[1], "Jeep", "Wrangler", "suv", "manual", 5, 89, "Miami", "SunDrive", 4.7),
		demoCar(carIDs[2], "Honda", "Odyssey", "van", "automatic", 7, 72, "Miami Beach", "CoastCars", 4.2),
		demoCar(carIDs[3], "BMW", "530i", "luxury", "automatic", 5, 140, "Orlando", "Prestige", 4.8),
	)

	s.AddFlights(
		demoFlight("TD-482", "TripAir", "JFK", "MIA", "2025-12-14", 7, 189, 0),
		demoFlight("TD-483", "TripAir", "JFK", "MIA", "2025-12-14", 13, 159, 1),
		demoFlight("SW-120", "SkyWays", "JFK", "MIA", "2025-12-14", 18, 210, 0),
		demoFlight("TD-484", "TripAir", "MIA", "JFK", "2025-12-18", 9, 175, 0),
		demoFlight("SW-121", "SkyWays", "MIA", "JFK", "2025-12-18", 16, 199, 1),
	)

	s.AddHotels(
		demoHotel("Seaside Palms", "Miami", 4, 4.6, 180, []string{"wifi", "pool", "spa"}),
		demoHotel("Harbor Lights", "Miami", 3, 4.1, 110, []string{"wifi", "parking"}),
		demoHotel("The Meridian", "Miami Beach", 5, 4.9, 340, []string{"wifi", "pool", "spa", "gym"}),
		demoHotel("Palmetto Inn", "Orlando", 2, 3.8, 75, []string{"wifi"}),
	)

	// One car is in the shop over the demo holiday window.
	s.AddBlocks(domain.AvailabilityBlock{
		ID:           uuid.New().String(),
		EntityType:   domain.DomainCars,
		EntityID:     carIDs[1],
		BlockedFrom:  date(2025, 12, 12),
		BlockedUntil: date(2025, 12, 16),
		Reason:       domain.BlockReasonMaintenance,
	})

	return s
}

func demoCar(id, brand, model, category, transmission string, seats int, rate float64, location, company string, rating float64) domain.CarListing {
	return domain.CarListing{
		ID:                 id,
		Brand:              brand,
		Model:              model,
		Category:           category,
		Transmission:       transmission,
		Seats:              seats,
		DailyRate:          rate,
		Location:           location,
		Company:            company,
		Rating:             rating,
		AvailabilityStatus: domain.StatusActive,
		ApprovalStatus:     domain.StatusApproved,
	}
}

func demoFlight(number, airline, origin, destination, day string, hour int, price float64, stops int) domain.FlightListing {
	dep, _ := time.Parse("2006-01-02", day)
	dep = dep.Add(time.Duration(hour) * time.Hour)
	duration := 195 + stops*75

	return domain.FlightListing{
		ID:                 uuid.New().String(),
		Airline:            airline,
		FlightNumber:       number,
		Origin:             origin,
		Destination:        destination,
		DepartureDate:      day,
		DepartureTime:      dep,
		ArrivalTime:        dep.Add(time.Duration(duration) * time.Minute),
		DurationMinutes:    duration,
		CabinClass:         "economy",
		Stops:              stops,
		Price:              price,
		SeatsAvailable:     42,
		AvailabilityStatus: domain.StatusActive,
	}
}

func demoHotel(name, location string, stars int, rating, nightly float64, amenities []string) domain.HotelListing {
	return domain.HotelListing{
		ID:                 uuid.New().String(),
		Name:               name,
		Location:           location,
		StarRating:         stars,
		Rating:             rating,
		PricePerNight:      nightly,
		Amenities:          amenities,
		AvailabilityStatus: domain.StatusActive,
		ApprovalStatus:     domain.StatusApproved,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
