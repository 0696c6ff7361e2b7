package donut

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HeaderRetryAfter is the retry-after header (seconds).
const HeaderRetryAfter = "Retry-After"

// rateLimiter throttles requests proactively and backs off when the
// endpoint answers 429 with Retry-After.
type rateLimiter struct {
	mu      sync.Mutex
	bucket  *rate.Limiter
	blocked time.Time
}

func newRateLimiter(perMinute int) *rateLimiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(float64(perMinute) / 60)
	}
	return &rateLimiter{bucket: rate.NewLimiter(limit, 1)}
}

// Wait blocks until a request may be sent.
func (r *rateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	blocked := r.blocked
	r.mu.Unlock()

	if wait := time.Until(blocked); wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return r.bucket.Wait(ctx)
}

// Backoff records a Retry-After from resp. Without one the endpoint is
// left alone for a minute.
func (r *rateLimiter) Backoff(resp *http.Response) time.Duration {
	wait := time.Minute
	if s := resp.Header.Get(HeaderRetryAfter); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
			wait = time.Duration(secs) * time.Second
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if until := time.Now().Add(wait); until.After(r.blocked) {
		r.blocked = until
	}
	return wait
}
