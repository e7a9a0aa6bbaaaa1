package google

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
	"github.com/custodia-labs/wsbridge/internal/logger"
)

// DefaultCooldown is the pause applied after a rate-limit response that
// carries no Retry-After header.
const DefaultCooldown = 60 * time.Second

// Throttle is the single gate every outbound provider call passes through.
// Callers queue in the order they called Wait and leave the gate one at a
// time. Each release happens at least the configured interval after the
// previous release and never before a rate-limit cool-down has ended.
type Throttle struct {
	limiter  *rate.Limiter
	interval time.Duration
	metrics  driven.Metrics

	mu          sync.Mutex
	tail        chan struct{} // closed when the last queued caller leaves
	lastRelease time.Time
	retryAt     time.Time

	// onRelease observes each release time. Tests only.
	onRelease func(time.Time)
}

// NewThrottle creates a gate with the given minimum spacing. A zero or
// negative interval disables spacing but keeps the cool-down behaviour.
func NewThrottle(minInterval time.Duration, metrics driven.Metrics) *Throttle {
	if metrics == nil {
		metrics = driven.NopMetrics{}
	}
	if minInterval < 0 {
		minInterval = 0
	}
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	tail := make(chan struct{})
	close(tail)
	return &Throttle{
		limiter:  rate.NewLimiter(limit, 1),
		interval: minInterval,
		metrics:  metrics,
		tail:     tail,
	}
}

// Interval returns the configured minimum spacing.
func (t *Throttle) Interval() time.Duration {
	return t.interval
}

// Wait blocks until the caller may issue its request. Cancelling ctx
// abandons the wait and returns ctx's error; callers queued behind it
// keep their order.
func (t *Throttle) Wait(ctx context.Context) error {
	start := time.Now()

	t.mu.Lock()
	prev := t.tail
	done := make(chan struct{})
	t.tail = done
	t.mu.Unlock()

	select {
	case <-prev:
	case <-ctx.Done():
		go func() {
			<-prev
			close(done)
		}()
		return ctx.Err()
	}
	defer close(done)

	if err := t.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}

	// The limiter schedules from reservation times. A late wake-up of the
	// previous caller is covered by spacing from its actual release.
	for {
		d := time.Until(t.nextRelease())
		if d <= 0 {
			break
		}
		if err := sleep(ctx, d); err != nil {
			return err
		}
	}

	now := time.Now()
	t.mu.Lock()
	t.lastRelease = now
	onRelease := t.onRelease
	t.mu.Unlock()
	if onRelease != nil {
		onRelease(now)
	}

	t.metrics.RecordThrottleWait(time.Since(start))
	return nil
}

// nextRelease is the earliest time the gate may open again.
func (t *Throttle) nextRelease() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	next := t.lastRelease.Add(t.interval)
	if t.retryAt.After(next) {
		next = t.retryAt
	}
	return next
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RecordRateLimitError pauses the gate after the provider answered 429.
// This only delays later calls; the failed call is not retried.
func (t *Throttle) RecordRateLimitError(retryAfter time.Duration) {
	if retryAfter <= 0 {
		retryAfter = DefaultCooldown
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	until := time.Now().Add(retryAfter)
	if until.After(t.retryAt) {
		t.retryAt = until
	}
	logger.Warn("provider rate limit hit, pausing requests for %s", retryAfter)
}
