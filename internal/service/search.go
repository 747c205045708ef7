package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wallaseek/wallaseek/internal/domain"
	"github.com/wallaseek/wallaseek/internal/filter"
	"github.com/wallaseek/wallaseek/internal/marketplace"
	"github.com/wallaseek/wallaseek/internal/metrics"
)

// Searcher is the public call surface: one search in, an ordered result set
// out. An empty result set is a successful search, not an error.
type Searcher interface {
	Search(ctx context.Context, c domain.Criteria) ([]domain.Result, error)
}

type Deps struct {
	Source  marketplace.Source
	Engine  *filter.Engine
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

type SearchService struct {
	source  marketplace.Source
	engine  *filter.Engine
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewSearchService(deps Deps) *SearchService {
	if deps.Engine == nil {
		deps.Engine = filter.New(filter.DefaultThresholds)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &SearchService{
		source:  deps.Source,
		engine:  deps.Engine,
		logger:  deps.Logger,
		metrics: deps.Metrics,
	}
}

// Search validates the criteria, drives the paginated fetch, then
// normalizes, filters and deduplicates each raw listing in fetch order.
// Configuration errors surface before any network activity; a single bad
// listing never fails the batch.
func (s *SearchService) Search(ctx context.Context, c domain.Criteria) ([]domain.Result, error) {
	start := time.Now()

	if err := c.Validate(); err != nil {
		s.metrics.RecordSearch("config_error", time.Since(start))
		return nil, err
	}
	c.Sanitize()

	s.logger.Info("starting search",
		zap.String("product", c.ProductName),
		zap.Strings("keywords", c.Keywords),
		zap.Int("max_items", c.MaxItems))

	raw, err := s.source.FetchListings(ctx, c)
	if err != nil {
		err = classify(err)
		s.metrics.RecordSearch(errorStatus(err), time.Since(start))
		s.logger.Error("fetch failed", zap.String("product", c.ProductName), zap.Error(err))
		return nil, err
	}

	results := make([]domain.Result, 0, len(raw))
	accepted := make(map[string]struct{}, len(raw))

	for _, item := range raw {
		// Dedup tracks accepted identities only: a rejected listing's id
		// does not block a later duplicate of it.
		if item.ID != "" {
			if _, ok := accepted[item.ID]; ok {
				s.metrics.RecordListing("duplicate")
				s.logger.Debug("skipping duplicate listing", zap.String("id", item.ID))
				continue
			}
		}

		listing := s.source.Normalize(item)
		if listing == nil {
			s.metrics.RecordListing("invalid")
			continue
		}

		decision := s.engine.Evaluate(listing, c)
		if !decision.Pass {
			s.metrics.RecordListing("filtered")
			s.logger.Debug("listing filtered out", zap.String("id", listing.ID))
			continue
		}

		accepted[listing.ID] = struct{}{}
		results = append(results, domain.Result{
			SearchTerm:           c.ProductName,
			Platform:             domain.SellerPlatform,
			Listing:              *listing,
			MatchScore:           decision.Score,
			MatchedInDescription: decision.MatchedInDescription,
		})
		s.metrics.RecordListing("accepted")
	}

	s.logger.Info("search complete",
		zap.String("product", c.ProductName),
		zap.Int("raw", len(raw)),
		zap.Int("accepted", len(results)),
		zap.Duration("took", time.Since(start)))
	s.metrics.RecordSearch("ok", time.Since(start))
	return results, nil
}

// classify wraps anything outside the known categories into ErrInternal so
// callers can always tell a known failure from an unknown defect.
func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrConfiguration),
		errors.Is(err, domain.ErrRequest),
		errors.Is(err, domain.ErrParsing),
		errors.Is(err, domain.ErrInternal):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}
}

func errorStatus(err error) string {
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		return "config_error"
	case errors.Is(err, domain.ErrRequest):
		return "request_error"
	case errors.Is(err, domain.ErrParsing):
		return "parsing_error"
	default:
		return "internal_error"
	}
}
