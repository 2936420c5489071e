package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/psd2scout/apiscout"
	"golang.org/x/time/rate"
)

var _ apiscout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests per domain using token buckets.
// Each domain gets its own limiter with a burst of 1, so consecutive
// fetches to one portal are spaced by the configured wait time while
// different portals are unaffected by each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	interval time.Duration
}

// NewDomainLimiter creates a DomainLimiter enforcing the given minimum
// interval between requests to one domain. A non-positive interval
// disables pacing.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		interval: interval,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.interval <= 0 {
		return nil
	}

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(d.interval), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
