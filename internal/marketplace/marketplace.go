package marketplace

import (
	"context"

	"github.com/wallaseek/wallaseek/internal/domain"
)

// Source is one marketplace backend. FetchListings runs the paginated
// search and returns raw listings in fetch order; Normalize validates one
// raw listing into a domain listing, returning nil for records that lack
// required fields.
type Source interface {
	FetchListings(ctx context.Context, c domain.Criteria) ([]RawListing, error)
	Normalize(raw RawListing) *domain.Listing
}
