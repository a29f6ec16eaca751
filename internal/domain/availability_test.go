package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tripdeck/listing-search/test/testutil"
)

func TestAvailabilityBlockOverlaps(t *testing.T) {
	// Block spans Dec 10 through Dec 15, inclusive on both ends.
	block := AvailabilityBlock{
		BlockedFrom:  testutil.MustParseDate(t, "2025-12-10"),
		BlockedUntil: testutil.MustParseDate(t, "2025-12-15"),
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{name: "range entirely before", start: "2025-12-01", end: "2025-12-09", want: false},
		{name: "range entirely after", start: "2025-12-16", end: "2025-12-20", want: false},
		{name: "range inside block", start: "2025-12-11", end: "2025-12-13", want: true},
		{name: "block inside range", start: "2025-12-01", end: "2025-12-31", want: true},
		{name: "overlap at start", start: "2025-12-08", end: "2025-12-11", want: true},
		{name: "overlap at end", start: "2025-12-14", end: "2025-12-18", want: true},
		{name: "range ends on block start day", start: "2025-12-05", end: "2025-12-10", want: true},
		{name: "range starts on block end day", start: "2025-12-15", end: "2025-12-20", want: true},
		{name: "single shared day", start: "2025-12-10", end: "2025-12-10", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := testutil.MustParseDate(t, tt.start)
			end := testutil.MustParseDate(t, tt.end)
			assert.Equal(t, tt.want, block.Overlaps(start, end))
		})
	}
}

func TestListingVisibility(t *testing.T) {
	t.Run("car requires active and approved", func(t *testing.T) {
		car := CarListing{AvailabilityStatus: StatusActive, ApprovalStatus: StatusApproved}
		assert.True(t, car.IsVisible())

		car.ApprovalStatus = "pending"
		assert.False(t, car.IsVisible())

		car.ApprovalStatus = StatusApproved
		car.AvailabilityStatus = "suspended"
		assert.False(t, car.IsVisible())
	})

	t.Run("flight requires active and seats", func(t *testing.T) {
		flight := FlightListing{AvailabilityStatus: StatusActive, SeatsAvailable: 1}
		assert.True(t, flight.IsVisible())

		flight.SeatsAvailable = 0
		assert.False(t, flight.IsVisible())
	})

	t.Run("hotel requires active and approved", func(t *testing.T) {
		hotel := HotelListing{AvailabilityStatus: StatusActive, ApprovalStatus: StatusApproved}
		assert.True(t, hotel.IsVisible())

		hotel.AvailabilityStatus = "inactive"
		assert.False(t, hotel.IsVisible())
	})
}

func TestHotelHasAmenities(t *testing.T) {
	hotel := HotelListing{Amenities: []string{"wifi", "pool", "spa"}}

	assert.True(t, hotel.HasAmenities(nil))
	assert.True(t, hotel.HasAmenities([]string{"wifi"}))
	assert.True(t, hotel.HasAmenities([]string{"pool", "spa"}))
	assert.False(t, hotel.HasAmenities([]string{"gym"}))
	assert.False(t, hotel.HasAmenities([]string{"wifi", "gym"}))
}
