package domain

// Page describes the pagination window of a result set.
type Page struct {
	// Total is the number of matching listings before pagination
	Total int `json:"total"`

	// Limit is the page size that was applied
	Limit int `json:"limit"`

	// Offset is the number of results that were skipped
	Offset int `json:"offset"`

	// HasMore indicates whether further pages exist beyond this one
	HasMore bool `json:"hasMore"`
}

// NewPage builds the pagination window for a result set of the given size.
func NewPage(total, limit, offset int) Page {
	return Page{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}
}

// CarResult is a car listing augmented with query-time derived fields.
type CarResult struct {
	CarListing

	// RentalDays is the chargeable rental length for the requested dates
	RentalDays int `json:"rentalDays"`

	// TotalPrice is DailyRate multiplied by RentalDays
	TotalPrice float64 `json:"totalPrice"`
}

// CarSearchResult is the composed result set for a car search.
type CarSearchResult struct {
	// Cars is the current page of matching cars
	Cars []CarResult `json:"cars"`

	// Page describes the pagination window
	Page Page `json:"page"`
}

// FlightSearchResult is the composed result set for a flight search.
// A round trip carries two independently sorted directional lists.
type FlightSearchResult struct {
	// IsRoundTrip indicates whether a return date was part of the search
	IsRoundTrip bool `json:"isRoundTrip"`

	// Flights is the current page of outbound flights
	Flights []FlightListing `json:"flights"`

	// ReturnFlights is the current page of return flights (round trip only)
	ReturnFlights []FlightListing `json:"returnFlights,omitempty"`

	// Page describes the pagination window of the outbound list
	Page Page `json:"page"`

	// ReturnPage describes the pagination window of the return list
	ReturnPage *Page `json:"returnPage,omitempty"`
}

// HotelSearchResult is the composed result set for a hotel search.
type HotelSearchResult struct {
	// Hotels is the current page of matching hotels
	Hotels []HotelListing `json:"hotels"`

	// Page describes the pagination window
	Page Page `json:"page"`
}
