package mock

import (
	"context"
	"sync"

	"github.com/wallaseek/wallaseek/internal/domain"
	"github.com/wallaseek/wallaseek/internal/marketplace"
	"github.com/wallaseek/wallaseek/internal/marketplace/wallapop"
)

// Source is a marketplace.Source double with call tracking. Normalize
// delegates to the real wallapop normalizer unless NormalizeFunc is set, so
// service tests exercise real validation rules by default.
type Source struct {
	Listings []marketplace.RawListing
	Error    error

	NormalizeFunc func(raw marketplace.RawListing) *domain.Listing

	CallCount    int
	LastCriteria domain.Criteria
	AllCriteria  []domain.Criteria

	mu sync.Mutex

	normalizer *wallapop.Client
}

func New() *Source {
	return &Source{
		normalizer: wallapop.New(wallapop.Config{}, nil, nil, nil),
	}
}

func (s *Source) WithListings(listings []marketplace.RawListing) *Source {
	s.Listings = listings
	return s
}

func (s *Source) WithError(err error) *Source {
	s.Error = err
	return s
}

func (s *Source) FetchListings(ctx context.Context, c domain.Criteria) ([]marketplace.RawListing, error) {
	s.mu.Lock()
	s.CallCount++
	s.LastCriteria = c
	s.AllCriteria = append(s.AllCriteria, c)
	err := s.Error
	listings := s.Listings
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if len(listings) > c.MaxItems && c.MaxItems > 0 {
		listings = listings[:c.MaxItems]
	}
	return listings, nil
}

func (s *Source) Normalize(raw marketplace.RawListing) *domain.Listing {
	if s.NormalizeFunc != nil {
		return s.NormalizeFunc(raw)
	}
	return s.normalizer.Normalize(raw)
}

func (s *Source) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CallCount = 0
	s.LastCriteria = domain.Criteria{}
	s.AllCriteria = nil
}
