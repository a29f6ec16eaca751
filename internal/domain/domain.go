// Package domain contains the core business entities and rules for the listing
// search system. These entities are storage-agnostic and form the foundation
// upon which the cache, composer, and HTTP layers are built.
package domain

// Domain identifies one of the three listing categories.
// Each domain owns an isolated cache namespace and its own capacity tuning.
type Domain string

// Supported listing domains.
const (
	// DomainCars is the rental-car listing domain.
	DomainCars Domain = "cars"

	// DomainFlights is the flight listing domain.
	DomainFlights Domain = "flights"

	// DomainHotels is the hotel listing domain.
	DomainHotels Domain = "hotels"
)

// AllDomains returns every supported domain in a stable order.
func AllDomains() []Domain {
	return []Domain{DomainCars, DomainFlights, DomainHotels}
}

// IsValid checks whether the domain is one of the supported values.
func (d Domain) IsValid() bool {
	switch d {
	case DomainCars, DomainFlights, DomainHotels:
		return true
	default:
		return false
	}
}

// String returns the domain as a plain string.
func (d Domain) String() string {
	return string(d)
}
