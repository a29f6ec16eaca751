package domain

import "time"

// Listing visibility statuses. Listings outside these values are excluded
// from every search regardless of date availability.
const (
	StatusActive   = "active"
	StatusApproved = "approved"
)

// CarListing represents a rental car offered on the platform.
type CarListing struct {
	// ID is the unique identifier of the car
	ID string `json:"id" gorm:"primaryKey;size:36"`

	// Brand is the manufacturer name (e.g., "Toyota")
	Brand string `json:"brand"`

	// Model is the model name (e.g., "Corolla")
	Model string `json:"model"`

	// Category is the vehicle category: suv, sedan, hatchback, van, luxury
	Category string `json:"category"`

	// Transmission is either "automatic" or "manual"
	Transmission string `json:"transmission"`

	// Seats is the passenger capacity
	Seats int `json:"seats"`

	// DailyRate is the rental price per day
	DailyRate float64 `json:"dailyRate"`

	// Location is the pickup city or area
	Location string `json:"location"`

	// Company is the rental company operating the car
	Company string `json:"company"`

	// Rating is the average customer rating (0-5)
	Rating float64 `json:"rating"`

	// AvailabilityStatus gates listing visibility ("active" is searchable)
	AvailabilityStatus string `json:"availabilityStatus"`

	// ApprovalStatus gates listing visibility ("approved" is searchable)
	ApprovalStatus string `json:"approvalStatus"`
}

// IsVisible reports whether the car may appear in search results at all,
// independent of date-range availability.
func (c CarListing) IsVisible() bool {
	return c.AvailabilityStatus == StatusActive && c.ApprovalStatus == StatusApproved
}

// FlightListing represents a single directional flight offering.
type FlightListing struct {
	// ID is the unique identifier of the flight
	ID string `json:"id" gorm:"primaryKey;size:36"`

	// Airline is the operating airline name
	Airline string `json:"airline"`

	// FlightNumber is the airline's flight number (e.g., "TD-482")
	FlightNumber string `json:"flightNumber"`

	// Origin is the IATA code of the departure airport
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport
	Destination string `json:"destination"`

	// DepartureDate is the service date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`

	// DepartureTime is the scheduled departure time
	DepartureTime time.Time `json:"departureTime"`

	// ArrivalTime is the scheduled arrival time
	ArrivalTime time.Time `json:"arrivalTime"`

	// DurationMinutes is the total flight duration in minutes
	DurationMinutes int `json:"durationMinutes"`

	// CabinClass is the travel class: economy, business, first
	CabinClass string `json:"cabinClass"`

	// Stops is the number of stops (0 = direct)
	Stops int `json:"stops"`

	// Price is the per-passenger fare
	Price float64 `json:"price"`

	// SeatsAvailable is the remaining bookable seat count
	SeatsAvailable int `json:"seatsAvailable"`

	// AvailabilityStatus gates listing visibility
	AvailabilityStatus string `json:"availabilityStatus"`
}

// IsVisible reports whether the flight may appear in search results.
func (f FlightListing) IsVisible() bool {
	return f.AvailabilityStatus == StatusActive && f.SeatsAvailable > 0
}

// HotelListing represents a hotel property on the platform.
type HotelListing struct {
	// ID is the unique identifier of the hotel
	ID string `json:"id" gorm:"primaryKey;size:36"`

	// Name is the property name
	Name string `json:"name"`

	// Location is the city or area of the property
	Location string `json:"location"`

	// StarRating is the official star classification (1-5)
	StarRating int `json:"starRating"`

	// Rating is the average guest rating (0-5)
	Rating float64 `json:"rating"`

	// PricePerNight is the nightly rate for the base room
	PricePerNight float64 `json:"pricePerNight"`

	// Amenities is the list of amenity tags (e.g., "wifi", "pool")
	Amenities []string `json:"amenities" gorm:"serializer:json"`

	// AvailabilityStatus gates listing visibility
	AvailabilityStatus string `json:"availabilityStatus"`

	// ApprovalStatus gates listing visibility
	ApprovalStatus string `json:"approvalStatus"`
}

// IsVisible reports whether the hotel may appear in search results.
func (h HotelListing) IsVisible() bool {
	return h.AvailabilityStatus == StatusActive && h.ApprovalStatus == StatusApproved
}

// HasAmenities reports whether the hotel offers every requested amenity.
// An empty request matches all hotels.
func (h HotelListing) HasAmenities(requested []string) bool {
	if len(requested) == 0 {
		return true
	}
	offered := make(map[string]struct{}, len(h.Amenities))
	for _, a := range h.Amenities {
		offered[a] = struct{}{}
	}
	for _, want := range requested {
		if _, ok := offered[want]; !ok {
			return false
		}
	}
	return true
}
