// Package usecase contains the business logic of the listing search core:
// the availability resolver, the per-domain query composers, and the search
// orchestrator that ties them to the cache layer.
package usecase

import (
	"context"
	"time"

	"github.com/tripdeck/listing-search/internal/domain"
	"github.com/tripdeck/listing-search/internal/repository"
)

// Resolver answers date-range availability questions against the booking
// subsystem's availability blocks. Blocks are read-only here; the booking
// service creates and removes them.
type Resolver struct {
	blocks repository.AvailabilityRepository
}

// NewResolver creates a Resolver over the given block source.
func NewResolver(blocks repository.AvailabilityRepository) *Resolver {
	return &Resolver{blocks: blocks}
}

// IsAvailable reports whether an entity is free for the whole requested
// range. Any single overlapping block makes it unavailable; an entity with
// no blocks is available.
func (r *Resolver) IsAvailable(ctx context.Context, entityType domain.Domain, entityID string, from, until time.Time) (bool, error) {
	blocks, err := r.blocks.BlocksForEntity(ctx, entityType, entityID)
	if err != nil {
		return false, err
	}

	for _, b := range blocks {
		if b.Overlaps(from, until) {
			return false, nil
		}
	}
	return true, nil
}

// BlockedSet returns the ids of every entity of the given type with a block
// overlapping [from, until]. Composers subtract this set from candidate
// result lists instead of calling IsAvailable per entity.
func (r *Resolver) BlockedSet(ctx context.Context, entityType domain.Domain, from, until time.Time) (map[string]struct{}, error) {
	ids, err := r.blocks.BlockedEntityIDs(ctx, entityType, from, until)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
