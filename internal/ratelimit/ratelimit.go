package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter paces outbound requests per host over a sliding window.
type Limiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
}

type Config struct {
	RequestsPerMinute int
}

func New(cfg Config) *Limiter {
	limit := cfg.RequestsPerMinute
	if limit <= 0 {
		limit = 30
	}

	return &Limiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   time.Minute,
	}
}

// Allow reports whether the host has a free slot and claims it when it does.
func (l *Limiter) Allow(host string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	// keep only in-window timestamps
	old := l.requests[host]
	fresh := old[:0] // reuse underlying array
	for _, t := range old {
		if t.After(cutoff) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= l.limit {
		l.requests[host] = fresh
		return false
	}

	l.requests[host] = append(fresh, now)
	return true
}

// Wait blocks until the host has a free slot or the context ends.
func (l *Limiter) Wait(ctx context.Context, host string) error {
	for {
		if l.Allow(host) {
			return nil
		}

		d := time.Until(l.resetTime(host))
		if d < 50*time.Millisecond {
			d = 50 * time.Millisecond
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
}

// resetTime is when the oldest in-window request ages out (approximately).
func (l *Limiter) resetTime(host string) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.requests[host]
	if len(ts) == 0 {
		return time.Now()
	}

	oldest := ts[0]
	for _, t := range ts[1:] {
		if t.Before(oldest) {
			oldest = t
		}
	}
	return oldest.Add(l.window)
}
