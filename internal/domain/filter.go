package domain

import (
	"fmt"
	"regexp"
	"time"
)

// SortOrder defines the direction of a sort.
type SortOrder string

// Sort directions. Anything other than "desc" resolves to ascending.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Resolve normalizes a sort order, defaulting to ascending.
func (o SortOrder) Resolve() SortOrder {
	if o == SortDesc {
		return SortDesc
	}
	return SortAsc
}

// Sortable fields per domain. A requested sort key outside the domain's
// allow-list falls back to the domain default (price ascending).
const (
	SortByPrice     = "price"
	SortByRating    = "rating"
	SortByBrand     = "brand"
	SortByDuration  = "duration"
	SortByDeparture = "departure"
	SortByStars     = "stars"
)

var sortableFields = map[Domain]map[string]bool{
	DomainCars:    {SortByPrice: true, SortByRating: true, SortByBrand: true},
	DomainFlights: {SortByPrice: true, SortByDuration: true, SortByDeparture: true},
	DomainHotels:  {SortByPrice: true, SortByRating: true, SortByStars: true},
}

// ResolveSortField returns the effective sort field for a domain.
// Unknown or empty fields fall back to price.
func ResolveSortField(d Domain, field string) string {
	if sortableFields[d][field] {
		return field
	}
	return SortByPrice
}

// Pagination holds the presentation block shared by all domain filters.
type Pagination struct {
	// Limit is the maximum number of results per page (default 20, max 100)
	Limit int `json:"limit,omitempty"`

	// Offset is the number of results to skip
	Offset int `json:"offset,omitempty"`
}

// Pagination bounds.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// SetDefaults applies default values to unset pagination fields.
func (p *Pagination) SetDefaults() {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// dateFormat is the wire format for all filter dates.
const dateFormat = "2006-01-02"

// datePattern matches dates in YYYY-MM-DD format.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// parseDate parses a YYYY-MM-DD date at UTC midnight.
func parseDate(field, value string) (time.Time, error) {
	if !datePattern.MatchString(value) {
		return time.Time{}, fmt.Errorf("%w: %s must be in YYYY-MM-DD format, got %q", ErrInvalidFilter, field, value)
	}
	t, err := time.Parse(dateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s is not a valid date: %s", ErrInvalidFilter, field, value)
	}
	return t, nil
}

// validateDatePair checks an optional date range: both-or-neither may be
// relaxed per domain, but when both are present start must not exceed end.
func validateDatePair(startField, startVal, endField, endVal string) error {
	var start, end time.Time
	var err error

	if startVal != "" {
		if start, err = parseDate(startField, startVal); err != nil {
			return err
		}
	}
	if endVal != "" {
		if end, err = parseDate(endField, endVal); err != nil {
			return err
		}
	}
	if startVal != "" && endVal != "" && start.After(end) {
		return fmt.Errorf("%w: %s must not be after %s", ErrInvalidFilter, startField, endField)
	}
	return nil
}

// validatePriceBounds checks optional min/max price values.
func validatePriceBounds(minPrice, maxPrice *float64) error {
	if minPrice != nil && *minPrice < 0 {
		return fmt.Errorf("%w: minPrice must not be negative", ErrInvalidFilter)
	}
	if maxPrice != nil && *maxPrice < 0 {
		return fmt.Errorf("%w: maxPrice must not be negative", ErrInvalidFilter)
	}
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		return fmt.Errorf("%w: minPrice must not exceed maxPrice", ErrInvalidFilter)
	}
	return nil
}

// CarFilter defines the parameters for a rental-car search.
// Location is required; everything else is optional.
type CarFilter struct {
	// Location is the pickup city or area (substring match)
	Location string `json:"location"`

	// PickupDate is the rental start date in YYYY-MM-DD format
	PickupDate string `json:"pickupDate,omitempty"`

	// DropoffDate is the rental end date in YYYY-MM-DD format
	DropoffDate string `json:"dropoffDate,omitempty"`

	// MinPrice filters out cars with a daily rate below this amount
	MinPrice *float64 `json:"minPrice,omitempty"`

	// MaxPrice filters out cars with a daily rate above this amount
	MaxPrice *float64 `json:"maxPrice,omitempty"`

	// Category filters by vehicle category (suv, sedan, ...)
	Category string `json:"category,omitempty"`

	// Transmission filters by transmission type (automatic, manual)
	Transmission string `json:"transmission,omitempty"`

	// MinSeats filters out cars with fewer seats than this value
	MinSeats *int `json:"minSeats,omitempty"`

	// Company filters by rental company (exact match)
	Company string `json:"company,omitempty"`

	// SortBy is the sort field: price, rating, brand
	SortBy string `json:"sortBy,omitempty"`

	// SortOrder is the sort direction: asc (default) or desc
	SortOrder SortOrder `json:"sortOrder,omitempty"`

	Pagination
}

// Validate checks the filter for caller errors.
// Returns a wrapped ErrInvalidFilter when a required field is missing or a
// value is inconsistent.
func (f *CarFilter) Validate() error {
	if f.Location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidFilter)
	}
	if err := validateDatePair("pickupDate", f.PickupDate, "dropoffDate", f.DropoffDate); err != nil {
		return err
	}
	if (f.PickupDate == "") != (f.DropoffDate == "") {
		return fmt.Errorf("%w: pickupDate and dropoffDate must be supplied together", ErrInvalidFilter)
	}
	if err := validatePriceBounds(f.MinPrice, f.MaxPrice); err != nil {
		return err
	}
	if f.MinSeats != nil && *f.MinSeats < 1 {
		return fmt.Errorf("%w: minSeats must be at least 1", ErrInvalidFilter)
	}
	return nil
}

// DateRange returns the requested rental interval.
// ok is false when no date range was supplied (no availability filtering).
func (f *CarFilter) DateRange() (from, until time.Time, ok bool) {
	return dateRange(f.PickupDate, f.DropoffDate)
}

// RentalDays returns the chargeable rental length in days (minimum 1),
// computed as the ceiling of the day difference between pickup and dropoff.
func (f *CarFilter) RentalDays() int {
	from, until, ok := f.DateRange()
	if !ok {
		return 1
	}
	days := int(until.Sub(from).Hours()+23) / 24
	if days < 1 {
		days = 1
	}
	return days
}

// FlightFilter defines the parameters for a flight search.
// Origin, destination, and departureDate are required.
type FlightFilter struct {
	// Origin is the IATA code of the departure airport
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport
	Destination string `json:"destination"`

	// DepartureDate is the outbound date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`

	// ReturnDate, when set, turns the search into a round trip
	ReturnDate string `json:"returnDate,omitempty"`

	// MinPrice filters out flights with a fare below this amount
	MinPrice *float64 `json:"minPrice,omitempty"`

	// MaxPrice filters out flights with a fare above this amount
	MaxPrice *float64 `json:"maxPrice,omitempty"`

	// Airline filters by operating airline (exact match)
	Airline string `json:"airline,omitempty"`

	// CabinClass filters by travel class (economy, business, first)
	CabinClass string `json:"cabinClass,omitempty"`

	// DirectOnly keeps only non-stop flights
	DirectOnly bool `json:"directOnly,omitempty"`

	// SortBy is the sort field: price, duration, departure
	SortBy string `json:"sortBy,omitempty"`

	// SortOrder is the sort direction: asc (default) or desc
	SortOrder SortOrder `json:"sortOrder,omitempty"`

	Pagination
}

// airportCodePattern matches valid IATA airport codes (3 uppercase letters).
var airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// validCabinClasses defines the allowed travel classes.
var validCabinClasses = map[string]bool{
	"economy":  true,
	"business": true,
	"first":    true,
}

// Validate checks the filter for caller errors.
func (f *FlightFilter) Validate() error {
	if f.Origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidFilter)
	}
	if !airportCodePattern.MatchString(f.Origin) {
		return fmt.Errorf("%w: origin must be a valid 3-letter IATA code, got %q", ErrInvalidFilter, f.Origin)
	}
	if f.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidFilter)
	}
	if !airportCodePattern.MatchString(f.Destination) {
		return fmt.Errorf("%w: destination must be a valid 3-letter IATA code, got %q", ErrInvalidFilter, f.Destination)
	}
	if f.Origin == f.Destination {
		return fmt.Errorf("%w: origin and destination must be different", ErrInvalidFilter)
	}
	if f.DepartureDate == "" {
		return fmt.Errorf("%w: departureDate is required", ErrInvalidFilter)
	}
	if err := validateDatePair("departureDate", f.DepartureDate, "returnDate", f.ReturnDate); err != nil {
		return err
	}
	if err := validatePriceBounds(f.MinPrice, f.MaxPrice); err != nil {
		return err
	}
	if f.CabinClass != "" && !validCabinClasses[f.CabinClass] {
		return fmt.Errorf("%w: cabinClass must be one of: economy, business, first; got %q", ErrInvalidFilter, f.CabinClass)
	}
	return nil
}

// IsRoundTrip reports whether a return date was supplied.
func (f *FlightFilter) IsRoundTrip() bool {
	return f.ReturnDate != ""
}

// Reversed returns a copy of the filter with origin/destination swapped and
// the return date as the departure date, for the return leg of a round trip.
func (f *FlightFilter) Reversed() FlightFilter {
	r := *f
	r.Origin, r.Destination = f.Destination, f.Origin
	r.DepartureDate = f.ReturnDate
	r.ReturnDate = ""
	return r
}

// HotelFilter defines the parameters for a hotel search.
// Location is required; everything else is optional.
type HotelFilter struct {
	// Location is the city or area (substring match)
	Location string `json:"location"`

	// CheckIn is the arrival date in YYYY-MM-DD format
	CheckIn string `json:"checkIn,omitempty"`

	// CheckOut is the departure date in YYYY-MM-DD format
	CheckOut string `json:"checkOut,omitempty"`

	// MinPrice filters out hotels with a nightly rate below this amount
	MinPrice *float64 `json:"minPrice,omitempty"`

	// MaxPrice filters out hotels with a nightly rate above this amount
	MaxPrice *float64 `json:"maxPrice,omitempty"`

	// MinStarRating filters out hotels below this star classification (1-5)
	MinStarRating *int `json:"minStarRating,omitempty"`

	// Amenities keeps only hotels offering every listed amenity
	Amenities []string `json:"amenities,omitempty"`

	// SortBy is the sort field: price, rating, stars
	SortBy string `json:"sortBy,omitempty"`

	// SortOrder is the sort direction: asc (default) or desc
	SortOrder SortOrder `json:"sortOrder,omitempty"`

	Pagination
}

// Validate checks the filter for caller errors.
func (f *HotelFilter) Validate() error {
	if f.Location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidFilter)
	}
	if err := validateDatePair("checkIn", f.CheckIn, "checkOut", f.CheckOut); err != nil {
		return err
	}
	if (f.CheckIn == "") != (f.CheckOut == "") {
		return fmt.Errorf("%w: checkIn and checkOut must be supplied together", ErrInvalidFilter)
	}
	if err := validatePriceBounds(f.MinPrice, f.MaxPrice); err != nil {
		return err
	}
	if f.MinStarRating != nil && (*f.MinStarRating < 1 || *f.MinStarRating > 5) {
		return fmt.Errorf("%w: minStarRating must be between 1 and 5", ErrInvalidFilter)
	}
	return nil
}

// DateRange returns the requested stay interval.
// ok is false when no date range was supplied.
func (f *HotelFilter) DateRange() (from, until time.Time, ok bool) {
	return dateRange(f.CheckIn, f.CheckOut)
}

// dateRange parses a validated start/end date pair.
func dateRange(start, end string) (time.Time, time.Time, bool) {
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, false
	}
	from, err := time.Parse(dateFormat, start)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	until, err := time.Parse(dateFormat, end)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return from, until, true
}
