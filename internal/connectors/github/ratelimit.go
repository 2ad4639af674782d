package github

import (
	"context"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/time/rate"
)

// ProactiveRate is the default throttle, about 4320 requests an hour, which
// stays under the authenticated quota of 5000.
const ProactiveRate = 1.2

// Quota is the last rate limit state reported by the API.
// Limit and Remaining are -1 until a response carried the headers.
type Quota struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RateLimiter paces requests with a token bucket and owns the fixed
// cooldown taken after a rate-limit response.
type RateLimiter struct {
	bucket   *rate.Limiter
	cooldown time.Duration

	mu        sync.Mutex
	quota     Quota
	cooldowns int
}

// NewRateLimiter paces requests at requestsPerSecond; zero disables pacing.
func NewRateLimiter(requestsPerSecond float64, cooldown time.Duration) *RateLimiter {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &RateLimiter{
		bucket:   rate.NewLimiter(limit, 1),
		cooldown: cooldown,
		quota:    Quota{Limit: -1, Remaining: -1},
	}
}

// Wait blocks until the bucket allows another request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}

// Cooldown sleeps for the fixed cooldown unless ctx ends first.
func (r *RateLimiter) Cooldown(ctx context.Context) error {
	r.mu.Lock()
	r.cooldowns++
	r.mu.Unlock()

	timer := time.NewTimer(r.cooldown)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CooldownDuration is the fixed wait after a rate-limit response.
func (r *RateLimiter) CooldownDuration() time.Duration {
	return r.cooldown
}

// Cooldowns counts the cooldowns taken so far.
func (r *RateLimiter) Cooldowns() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cooldowns
}

// Observe records the quota go-github parsed from a response.
// A zero Rate means the headers were absent and is ignored.
func (r *RateLimiter) Observe(rt gh.Rate) {
	if rt.Limit == 0 && rt.Remaining == 0 && rt.Reset.IsZero() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.quota = Quota{Limit: rt.Limit, Remaining: rt.Remaining, ResetAt: rt.Reset.Time}
}

// Quota returns the last observed quota.
func (r *RateLimiter) Quota() Quota {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quota
}

// ErrorFor describes a rate-limit response with the last observed quota.
func (r *RateLimiter) ErrorFor(statusCode int) *RateLimitError {
	q := r.Quota()
	return &RateLimitError{
		StatusCode: statusCode,
		ResetAt:    q.ResetAt,
		Remaining:  q.Remaining,
		Limit:      q.Limit,
	}
}
