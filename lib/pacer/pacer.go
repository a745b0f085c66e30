// Package pacer spaces out outbound provider requests so refresh jobs
// do not burn through upstream request quotas in one burst.
package pacer

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// A Pacer blocks the caller until it is polite to issue the next
// request. Pacing never fails; when the context is cancelled the
// caller's own request is about to fail anyway, so Pace just returns
// and lets that happen.
type Pacer interface {
	Pace(ctx context.Context)
}

// FixedDelay waits the same flat duration before every request.
type FixedDelay struct {
	Delay time.Duration
}

func (p FixedDelay) Pace(ctx context.Context) {
	if p.Delay <= 0 {
		return
	}
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// Limiter smooths requests to a steady interval with some burst
// allowance, which suits providers that publish an hourly quota
// rather than a minimum spacing.
type Limiter struct {
	limiter *rate.Limiter
}

func NewLimiter(interval time.Duration, burst int) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Every(interval), burst),
	}
}

func (p *Limiter) Pace(ctx context.Context) {
	_ = p.limiter.Wait(ctx)
}

// Noop does not pace at all. Tests and one-off CLI invocations use it.
type Noop struct{}

func (Noop) Pace(ctx context.Context) {}
