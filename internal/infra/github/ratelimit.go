package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Retry defaults, matching the GitHub API guidance of doubling waits.
const (
	DefaultBaseDelay   = 2.0
	DefaultMaxAttempts = 5

	// DefaultResetBuffer is the extra wait added after a known quota reset,
	// covering clock skew between this host and the API.
	DefaultResetBuffer = 5 * time.Second

	// testModeDelay keeps retry loops fast under test.
	testModeDelay = 100 * time.Millisecond
)

// RateLimiter decides how long to wait before retrying a rate-limited call:
// waiting for a known quota reset, or exponential backoff when the wait
// duration is unknown. Time and randomness are injectable so tests never sleep.
type RateLimiter struct {
	base          float64
	resetBuffer   time.Duration
	deterministic bool
	testMode      bool

	now    func() time.Time
	sleep  func(context.Context, time.Duration) error
	jitter func() float64
}

// RateLimiterOption configures a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithBaseDelay sets the backoff base delay in seconds.
func WithBaseDelay(seconds float64) RateLimiterOption {
	return func(r *RateLimiter) { r.base = seconds }
}

// WithResetBuffer sets the extra wait added after a known quota reset.
func WithResetBuffer(d time.Duration) RateLimiterOption {
	return func(r *RateLimiter) { r.resetBuffer = d }
}

// WithDeterministic disables jitter so delays are exactly base*2^attempt.
func WithDeterministic() RateLimiterOption {
	return func(r *RateLimiter) { r.deterministic = true }
}

// WithTestMode replaces computed backoff sleeps with a short fixed delay.
func WithTestMode() RateLimiterOption {
	return func(r *RateLimiter) { r.testMode = true }
}

// WithClock injects the time source and sleeper.
func WithClock(now func() time.Time, sleep func(context.Context, time.Duration) error) RateLimiterOption {
	return func(r *RateLimiter) {
		r.now = now
		r.sleep = sleep
	}
}

// WithJitter injects the jitter source. The function should return a value
// in [0, 1).
func WithJitter(fn func() float64) RateLimiterOption {
	return func(r *RateLimiter) { r.jitter = fn }
}

// NewRateLimiter creates a rate limiter with real time and randomness.
func NewRateLimiter(opts ...RateLimiterOption) *RateLimiter {
	r := &RateLimiter{
		base:        DefaultBaseDelay,
		resetBuffer: DefaultResetBuffer,
		now:         time.Now,
		sleep:       sleepContext,
		jitter:      rand.Float64,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CheckRateLimit queries the core quota of the authenticated client. The
// reset time may be absent. remaining <= limit always holds upstream.
func (r *RateLimiter) CheckRateLimit(ctx context.Context, c *Client) (remaining, limit int, resetAt *time.Time, err error) {
	limits, _, err := c.REST().RateLimit.Get(ctx)
	if err != nil {
		return 0, 0, nil, Map(err, "")
	}
	core := limits.Core
	if core == nil {
		return 0, 0, nil, NewError(KindUnknown, "rate limit response missing core quota")
	}
	RateLimitRemaining.Set(float64(core.Remaining))
	if !core.Reset.Time.IsZero() {
		t := core.Reset.Time
		resetAt = &t
	}
	return core.Remaining, core.Limit, resetAt, nil
}

// WaitForReset blocks until max(now, resetAt) plus the buffer, or until ctx
// is done. A reset already in the past waits exactly the buffer.
func (r *RateLimiter) WaitForReset(ctx context.Context, resetAt time.Time, buffer time.Duration) error {
	wait := buffer
	if d := resetAt.Sub(r.now()); d > 0 {
		wait += d
	}
	slog.Info("Waiting for rate limit reset", "wait", wait, "reset_at", resetAt)
	return r.sleep(ctx, wait)
}

// BackoffDelay computes the delay in seconds before retry number attempt.
// Deterministic mode returns exactly base*2^attempt; otherwise jitter is
// added so repeated calls at the same attempt differ. attempt >= maxAttempts
// is a terminal failure wrapping ErrRetryLimitExceeded.
func (r *RateLimiter) BackoffDelay(attempt, maxAttempts int) (float64, error) {
	if attempt >= maxAttempts {
		return 0, &Error{
			Kind:    KindRateLimit,
			Message: fmt.Sprintf("Maximum retry attempts (%d) exceeded", maxAttempts),
			cause:   ErrRetryLimitExceeded,
		}
	}
	delay := r.base * math.Pow(2, float64(attempt))
	if !r.deterministic {
		delay += r.jitter()
	}
	return delay, nil
}

// HandleWithBackoff sleeps before the next retry of a rate-limited call.
// An error carrying a known quota reset time waits until that reset plus the
// buffer; otherwise the wait is exponential backoff. When the attempt budget
// is exhausted it returns the original error unchanged, so callers can still
// distinguish the triggering failure. A nil return means "retry now".
func (r *RateLimiter) HandleWithBackoff(ctx context.Context, orig error, attempt, maxAttempts int) error {
	if attempt >= maxAttempts {
		return orig
	}

	if r.testMode {
		RetriesTotal.Inc()
		return r.sleep(ctx, testModeDelay)
	}

	var de *Error
	if errors.As(orig, &de) && de.ResetAt != nil && de.ResetAt.After(r.now()) {
		RetriesTotal.Inc()
		return r.WaitForReset(ctx, *de.ResetAt, r.resetBuffer)
	}

	delay, err := r.BackoffDelay(attempt, maxAttempts)
	if err != nil {
		return orig
	}
	wait := time.Duration(delay * float64(time.Second))

	slog.Warn("Rate limited, backing off", "attempt", attempt, "wait", wait)
	RetriesTotal.Inc()
	return r.sleep(ctx, wait)
}

// Do runs fn, retrying with backoff while it fails with a RateLimit domain
// error. Any other error is single-shot. The original rate limit error
// propagates unchanged once attempts are exhausted.
func (r *RateLimiter) Do(ctx context.Context, maxAttempts int, fn func() error) error {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil || !IsRateLimit(err) {
			return err
		}
		if attempt >= maxAttempts {
			return err
		}
		if slept := r.HandleWithBackoff(ctx, err, attempt, maxAttempts); slept != nil {
			return slept
		}
	}
}
