package transport

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/wallaseek/wallaseek/internal/ratelimit"
)

// Response is what callers see: a status code and the raw body. Retries,
// backoff and pacing all happen below this line.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) Text() string {
	return string(r.Body)
}

type Config struct {
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerMinute int
}

type Client struct {
	http    *http.Client
	retries int
	limiter *ratelimit.Limiter
	logger  *zap.Logger
}

// The marketplace rejects requests without a browser User-Agent; one is
// picked per request.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *ratelimit.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = ratelimit.New(ratelimit.Config{RequestsPerMinute: cfg.RequestsPerMinute})
	}

	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		retries: cfg.MaxRetries,
		limiter: limiter,
		logger:  logger,
	}
}

// Get performs one GET with retry on transient failure (network errors,
// 5xx, 429). Any other response is returned as-is: classifying a non-200
// status is the caller's job.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) (*Response, error) {
	var lastErr error
	backoff := time.Second

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx, hostOf(rawURL)); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("do request: %w", err)
			c.logger.Debug("request failed", zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			c.logger.Debug("retryable status",
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt))
			continue
		}

		return &Response{StatusCode: resp.StatusCode, Body: body}, nil
	}

	return nil, lastErr
}

func hostOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		return u.Host
	}
	return rawURL
}
