package domain

import "time"

// BlockReason explains why an entity is blocked for a date interval.
type BlockReason string

// Block reasons.
const (
	// BlockReasonBooked marks an interval held by a confirmed booking.
	BlockReasonBooked BlockReason = "booked"

	// BlockReasonMaintenance marks an interval held for maintenance.
	BlockReasonMaintenance BlockReason = "maintenance"
)

// AvailabilityBlock represents a date interval during which an entity is not
// bookable. Blocks are owned by the booking subsystem; this core only reads
// them.
type AvailabilityBlock struct {
	// ID is the unique identifier of the block
	ID string `json:"id" gorm:"primaryKey;size:36"`

	// EntityType is the listing domain the blocked entity belongs to
	EntityType Domain `json:"entityType" gorm:"index:idx_entity"`

	// EntityID is the blocked listing's identifier
	EntityID string `json:"entityId" gorm:"index:idx_entity;size:36"`

	// BlockedFrom is the first blocked day (inclusive)
	BlockedFrom time.Time `json:"blockedFrom"`

	// BlockedUntil is the last blocked day (inclusive)
	BlockedUntil time.Time `json:"blockedUntil"`

	// Reason is why the interval is blocked
	Reason BlockReason `json:"reason"`

	// BookingID is the originating booking, when the reason is "booked"
	BookingID string `json:"bookingId,omitempty"`
}

// Overlaps applies the standard interval-overlap test against a requested
// range: the block conflicts iff blockedFrom <= rangeEnd AND
// blockedUntil >= rangeStart. Boundaries are inclusive; a single shared day
// is a conflict (no partial-day credit).
func (b AvailabilityBlock) Overlaps(rangeStart, rangeEnd time.Time) bool {
	return !b.BlockedFrom.After(rangeEnd) && !b.BlockedUntil.Before(rangeStart)
}
