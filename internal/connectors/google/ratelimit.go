package google

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Sheets enforces its quota per minute and per user, with separate
// allowances for reads and writes.
const (
	DefaultReadsPerMinute  = 60
	DefaultWritesPerMinute = 60

	// defaultPause applies when a 429 carries no usable Retry-After.
	defaultPause = time.Minute
)

// QuotaKind selects the quota bucket a request draws from.
type QuotaKind int

const (
	QuotaRead QuotaKind = iota
	QuotaWrite
)

// QuotaConfig sets the per-minute request allowances. A value of zero or
// less disables throttling for that bucket.
type QuotaConfig struct {
	ReadsPerMinute  int
	WritesPerMinute int
	Burst           int
}

// DefaultQuota returns the published Sheets per-user quota.
func DefaultQuota() QuotaConfig {
	return QuotaConfig{
		ReadsPerMinute:  DefaultReadsPerMinute,
		WritesPerMinute: DefaultWritesPerMinute,
		Burst:           5,
	}
}

// RateLimiter keeps Sheets calls within quota. Each call waits on its
// bucket; a 429 response pauses every bucket until the server's
// Retry-After has passed.
type RateLimiter struct {
	read  *rate.Limiter
	write *rate.Limiter

	mu          sync.Mutex
	pausedUntil time.Time
	now         func() time.Time
}

// NewRateLimiter creates a limiter for cfg.
func NewRateLimiter(cfg QuotaConfig) *RateLimiter {
	burst := max(cfg.Burst, 1)
	return &RateLimiter{
		read:  rate.NewLimiter(perMinute(cfg.ReadsPerMinute), burst),
		write: rate.NewLimiter(perMinute(cfg.WritesPerMinute), burst),
		now:   time.Now,
	}
}

func perMinute(n int) rate.Limit {
	if n <= 0 {
		return rate.Inf
	}
	return rate.Every(time.Minute / time.Duration(n))
}

// Wait blocks until a request of kind may be sent.
func (r *RateLimiter) Wait(ctx context.Context, kind QuotaKind) error {
	if d := r.pauseRemaining(); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if kind == QuotaWrite {
		return r.write.Wait(ctx)
	}
	return r.read.Wait(ctx)
}

// Pause stops all requests for d. A non-positive d uses the default pause.
func (r *RateLimiter) Pause(d time.Duration) {
	if d <= 0 {
		d = defaultPause
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pausedUntil = r.now().Add(d)
}

// Paused reports whether a quota pause is in effect.
func (r *RateLimiter) Paused() bool {
	return r.pauseRemaining() > 0
}

func (r *RateLimiter) pauseRemaining() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pausedUntil.Sub(r.now())
}
