// Package http provides the HTTP handler layer for the listing search API.
// It handles request parsing, validation, response formatting, and error
// mapping.
package http

// Example payloads returned alongside 400 responses so callers can see
// correct usage without leaving the error message.
var (
	carSearchExample = map[string]interface{}{
		"location":    "Miami",
		"pickupDate":  "2025-12-14",
		"dropoffDate": "2025-12-18",
		"maxPrice":    90,
		"category":    "suv",
		"sortBy":      "price",
		"sortOrder":   "asc",
		"limit":       20,
		"offset":      0,
	}

	flightSearchExample = map[string]interface{}{
		"origin":        "JFK",
		"destination":   "MIA",
		"departureDate": "2025-12-14",
		"returnDate":    "2025-12-18",
		"cabinClass":    "economy",
		"directOnly":    true,
		"sortBy":        "price",
		"limit":         20,
	}

	hotelSearchExample = map[string]interface{}{
		"location":      "Miami",
		"checkIn":       "2025-12-14",
		"checkOut":      "2025-12-18",
		"minStarRating": 4,
		"amenities":     []string{"wifi", "pool"},
		"sortBy":        "rating",
		"sortOrder":     "desc",
		"limit":         20,
	}
)
