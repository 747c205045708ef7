package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wallaseek/wallaseek/internal/config"
	"github.com/wallaseek/wallaseek/internal/domain"
	"github.com/wallaseek/wallaseek/internal/filter"
	"github.com/wallaseek/wallaseek/internal/marketplace/wallapop"
	"github.com/wallaseek/wallaseek/internal/metrics"
	"github.com/wallaseek/wallaseek/internal/service"
	"github.com/wallaseek/wallaseek/internal/transport"
)

func main() {
	var (
		products    = flag.String("product", "", "product name(s) to search for, comma separated")
		keywords    = flag.String("keywords", "", "comma separated keywords to match")
		excluded    = flag.String("exclude", "", "comma separated terms that disqualify a listing")
		minPrice    = flag.Float64("min", -1, "minimum price (-1 = no bound)")
		maxPrice    = flag.Float64("max", -1, "maximum price (-1 = no bound)")
		maxItems    = flag.Int("limit", 0, "item budget across all pages (0 = config default)")
		orderBy     = flag.String("order", "newest", "sort order: newest, price_low_to_high, price_high_to_low")
		timeFilter  = flag.String("time", "", "time filter passed to the API verbatim")
		metricsAddr = flag.String("metrics-addr", "", "address to serve /metrics on (empty = off)")
	)
	flag.Parse()

	if *products == "" {
		fmt.Fprintln(os.Stderr, "usage: wallaseek -product <name>[,<name>...] [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	m := metrics.New()
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	tr := transport.New(transport.Config{
		Timeout:           cfg.HTTP.Timeout,
		MaxRetries:        cfg.HTTP.MaxRetries,
		RequestsPerMinute: cfg.HTTP.RequestsPerMinute,
	}, logger)

	client := wallapop.New(wallapop.Config{
		BaseURL: cfg.Search.BaseURL,
		Geo:     wallapop.Geo{Latitude: cfg.Search.Latitude, Longitude: cfg.Search.Longitude},
	}, tr, logger, m)

	svc := service.NewSearchService(service.Deps{
		Source: client,
		Engine: filter.New(filter.Thresholds{
			Title:       cfg.Filter.TitleThreshold,
			Description: cfg.Filter.DescriptionThreshold,
			Excluded:    cfg.Filter.ExcludedThreshold,
		}),
		Logger:  logger,
		Metrics: m,
	})

	limit := *maxItems
	if limit <= 0 {
		limit = cfg.Search.MaxItems
	}

	// Independent searches share no state, so they can fan out safely.
	g, ctx := errgroup.WithContext(context.Background())
	var mu sync.Mutex
	all := make(map[string][]domain.Result)

	for _, p := range splitList(*products) {
		p := p
		g.Go(func() error {
			crit := domain.Criteria{
				ProductName:      p,
				Keywords:         splitList(*keywords),
				ExcludedKeywords: splitList(*excluded),
				MinPrice:         optionalPrice(*minPrice),
				MaxPrice:         optionalPrice(*maxPrice),
				MaxItems:         limit,
				OrderBy:          domain.SortOrder(*orderBy),
				TimeFilter:       domain.TimeFilter(*timeFilter),
			}

			results, err := svc.Search(ctx, crit)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}

			mu.Lock()
			all[p] = results
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Fatal("search failed", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(all); err != nil {
		logger.Fatal("encoding results", zap.Error(err))
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func optionalPrice(v float64) *float64 {
	if v < 0 {
		return nil
	}
	return &v
}
