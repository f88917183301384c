package github

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/reposcout/internal/logger"
)

const (
	// MinRemaining is the remaining-request budget at or below which the
	// limiter suspends until the reset time.
	MinRemaining = 1

	// ProgressInterval is the longest stretch of a suspension without a notice.
	ProgressInterval = 60 * time.Second

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"
)

// RateLimiter implements dual-strategy rate limiting for GitHub API.
//
// The reactive half inspects the headers of every response and suspends the
// caller until the window resets once the budget is exhausted. The proactive
// half is an optional token bucket applied before each request.
type RateLimiter struct {
	bucket *rate.Limiter
	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRateLimiter creates a rate limiter. A proactiveRate of 0 or less
// disables proactive throttling.
func NewRateLimiter(proactiveRate float64) *RateLimiter {
	limit := rate.Inf
	if proactiveRate > 0 {
		limit = rate.Limit(proactiveRate)
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(limit, 1),
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// Wait blocks until the proactive bucket allows a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}

// Observe inspects response headers and suspends the caller until the
// rate-limit window resets when the remaining budget is exhausted.
// Missing or unparsable headers never block.
func (r *RateLimiter) Observe(ctx context.Context, header http.Header) error {
	wait := r.waitDuration(header)
	if wait <= 0 {
		return nil
	}

	logger.Warn("Rate limit hit. Sleeping for %d seconds...", int64(wait/time.Second))
	for wait > 0 {
		slice := min(wait, ProgressInterval)
		if err := r.sleep(ctx, slice); err != nil {
			return err
		}
		wait -= slice
		if wait > 0 {
			logger.Info("Still waiting... %d seconds remaining", int64(wait/time.Second))
		}
	}
	return nil
}

// waitDuration returns how long to suspend for the given headers.
func (r *RateLimiter) waitDuration(header http.Header) time.Duration {
	if header == nil {
		return 0
	}
	remaining, err := strconv.Atoi(header.Get(HeaderRateRemaining))
	if err != nil || remaining > MinRemaining {
		return 0
	}
	reset, err := strconv.ParseInt(header.Get(HeaderRateReset), 10, 64)
	if err != nil {
		return 0
	}
	return time.Duration(reset-r.now().Unix()) * time.Second
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
