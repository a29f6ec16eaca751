package usecase

import (
	"sort"

	"github.com/tripdeck/listing-search/internal/domain"
	"github.com/tripdeck/listing-search/internal/repository"
)

// Composer translates a validated filter into a deterministic, ordered,
// paginated result set over the backing store, applying the availability
// resolver as a set-difference predicate when a date range is present.
type Composer struct {
	repos    repository.Listings
	resolver *Resolver
}

// NewComposer creates a Composer over the given repositories.
func NewComposer(repos repository.Listings) *Composer {
	return &Composer{
		repos:    repos,
		resolver: NewResolver(repos.Availability),
	}
}

// Resolver exposes the availability resolver for direct yes/no checks
// (pre-booking confirmation).
func (c *Composer) Resolver() *Resolver {
	return c.resolver
}

// paginate slices one page out of items and builds the page descriptor.
// A never-nil slice is returned so empty pages serialize as [].
func paginate[T any](items []T, limit, offset int) ([]T, domain.Page) {
	page := domain.NewPage(len(items), limit, offset)

	if offset >= len(items) {
		return []T{}, page
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}

	out := make([]T, end-offset)
	copy(out, items[offset:end])
	return out, page
}

// sortSlice sorts items by the given less function, descending when order
// resolves to desc. The sort is stable so equal elements keep their backing
// store order and pagination stays deterministic.
func sortSlice[T any](items []T, order domain.SortOrder, less func(a, b T) bool) {
	if order.Resolve() == domain.SortDesc {
		original := less
		less = func(a, b T) bool { return original(b, a) }
	}
	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
}
