package wallapop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wallaseek/wallaseek/internal/domain"
	"github.com/wallaseek/wallaseek/internal/marketplace"
	"github.com/wallaseek/wallaseek/internal/metrics"
	"github.com/wallaseek/wallaseek/internal/transport"
)

// Default request headers per the marketplace web client. User-Agent is
// filled in by the transport.
var defaultHeaders = map[string]string{
	"X-DeviceOS":    "0",
	"Cache-Control": "no-cache",
	"Pragma":        "no-cache",
}

// Transport performs one GET and reports either a response or a definitive
// failure after its own retry policy. The client never retries.
type Transport interface {
	Get(ctx context.Context, url string, headers map[string]string) (*transport.Response, error)
}

type Config struct {
	BaseURL string
	Geo     Geo
}

type Client struct {
	cfg       Config
	transport Transport
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func New(cfg Config, t Transport, logger *zap.Logger, m *metrics.Metrics) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Geo == (Geo{}) {
		cfg.Geo = DefaultGeo
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		cfg:       cfg,
		transport: t,
		logger:    logger,
		metrics:   m,
	}
}

type paginationState int

const (
	stateFetching paginationState = iota
	stateBudgetReached
	stateExhausted
	stateFailed
)

// FetchListings pages through the search API until the item budget is
// reached or the results run out. Fetching is strictly sequential: the next
// page is only requested once the current page is fully accounted for. The
// budget is the sole termination backstop, so it is enforced inside the
// loop and the final page truncates rather than overruns.
func (c *Client) FetchListings(ctx context.Context, crit domain.Criteria) ([]marketplace.RawListing, error) {
	budget := crit.MaxItems
	if budget <= 0 {
		budget = domain.DefaultMaxItems
	}

	var (
		collected  []marketplace.RawListing
		state      = stateFetching
		currentURL = BuildSearchURL(crit, c.cfg.Geo, c.cfg.BaseURL)
		pages      = 0
		fetchErr   error
	)

	for state == stateFetching {
		pages++
		c.logger.Debug("fetching page",
			zap.Int("page", pages),
			zap.Int("collected", len(collected)),
			zap.Int("budget", budget))

		items, cursor, err := c.fetchPage(ctx, currentURL)
		if err != nil {
			state = stateFailed
			fetchErr = err
			break
		}

		if len(items) == 0 {
			state = stateExhausted
			break
		}

		if remaining := budget - len(collected); len(items) > remaining {
			items = items[:remaining]
		}
		collected = append(collected, items...)

		switch {
		case len(collected) >= budget:
			state = stateBudgetReached
		case cursor == "":
			state = stateExhausted
		default:
			next, err := nextPageURL(currentURL, cursor)
			if err != nil {
				state = stateFailed
				fetchErr = fmt.Errorf("%w: rebuilding page URL: %v", domain.ErrInternal, err)
				break
			}
			currentURL = next
		}
	}

	if state == stateFailed {
		return nil, fetchErr
	}

	c.logger.Info("pagination finished",
		zap.Int("pages", pages),
		zap.Int("items", len(collected)),
		zap.Bool("budget_reached", state == stateBudgetReached))
	return collected, nil
}

// fetchPage performs one GET and extracts the page's listings and the
// next-page cursor. A missing cursor, even alongside items, is the
// legitimate end of results.
func (c *Client) fetchPage(ctx context.Context, pageURL string) ([]marketplace.RawListing, string, error) {
	start := time.Now()

	resp, err := c.transport.Get(ctx, pageURL, defaultHeaders)
	if err != nil {
		c.metrics.RecordPage("error", time.Since(start))
		return nil, "", fmt.Errorf("%w: %v", domain.ErrRequest, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordPage("error", time.Since(start))
		return nil, "", fmt.Errorf("%w: status %d", domain.ErrRequest, resp.StatusCode)
	}

	var envelope searchResponse
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		c.metrics.RecordPage("error", time.Since(start))
		return nil, "", fmt.Errorf("%w: %v", domain.ErrParsing, err)
	}

	items := c.decodeItems(envelope.Data.Section.Payload.Items)
	c.metrics.RecordPage("ok", time.Since(start))
	return items, envelope.Meta.NextPage, nil
}

// decodeItems tolerates a missing or non-array items field (empty page) and
// skips individual items that do not decode, so one bad listing cannot sink
// the page.
func (c *Client) decodeItems(raw json.RawMessage) []marketplace.RawListing {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] != '[' {
		c.logger.Warn("items field is not an array, treating page as empty")
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		c.logger.Warn("items array did not decode, treating page as empty", zap.Error(err))
		return nil
	}

	out := make([]marketplace.RawListing, 0, len(elems))
	for i, el := range elems {
		var item marketplace.RawListing
		if err := json.Unmarshal(el, &item); err != nil {
			c.metrics.RecordListing("malformed")
			c.logger.Debug("skipping undecodable item", zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, item)
	}
	return out
}
