package github

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeClock drives WaitForReset and HandleWithBackoff without sleeping.
type fakeClock struct {
	now    time.Time
	slept  []time.Duration
	failAt int // n-th sleep returns context.Canceled; 0 = never
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	f.slept = append(f.slept, d)
	if f.failAt > 0 && len(f.slept) == f.failAt {
		return context.Canceled
	}
	return nil
}

func newFakeLimiter(clock *fakeClock, opts ...RateLimiterOption) *RateLimiter {
	base := []RateLimiterOption{WithClock(clock.Now, clock.Sleep)}
	return NewRateLimiter(append(base, opts...)...)
}

func TestBackoffDelayDeterministic(t *testing.T) {
	r := NewRateLimiter(WithDeterministic())

	tests := []struct {
		attempt int
		want    float64
	}{
		{0, 2.0},
		{1, 4.0},
		{2, 8.0},
		{3, 16.0},
	}
	for _, tt := range tests {
		got, err := r.BackoffDelay(tt.attempt, 5)
		if err != nil {
			t.Fatalf("attempt %d: unexpected error %v", tt.attempt, err)
		}
		if got != tt.want {
			t.Errorf("BackoffDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestBackoffDelayStrictlyIncreasing(t *testing.T) {
	r := NewRateLimiter(WithDeterministic())
	prev := 0.0
	for attempt := 0; attempt < 5; attempt++ {
		d, err := r.BackoffDelay(attempt, 5)
		if err != nil {
			t.Fatalf("attempt %d: %v", attempt, err)
		}
		if d <= prev {
			t.Fatalf("delay(%d) = %v not greater than delay(%d) = %v", attempt, d, attempt-1, prev)
		}
		prev = d
	}
}

func TestBackoffDelayJitter(t *testing.T) {
	calls := 0
	r := NewRateLimiter(WithJitter(func() float64 {
		calls++
		return float64(calls) * 0.1
	}))

	d1, _ := r.BackoffDelay(0, 5)
	d2, _ := r.BackoffDelay(0, 5)
	if d1 == d2 {
		t.Errorf("repeated jittered delays equal: %v", d1)
	}
	if d1 <= 2.0 || d2 <= 2.0 {
		t.Errorf("jittered delays should exceed the base: %v, %v", d1, d2)
	}
}

func TestBackoffDelayRetryLimitExceeded(t *testing.T) {
	r := NewRateLimiter(WithDeterministic())

	for _, attempt := range []int{5, 6, 100} {
		_, err := r.BackoffDelay(attempt, 5)
		if err == nil {
			t.Fatalf("attempt %d: expected error", attempt)
		}
		if !errors.Is(err, ErrRetryLimitExceeded) {
			t.Errorf("attempt %d: error %v does not wrap ErrRetryLimitExceeded", attempt, err)
		}
	}
}

func TestWaitForReset(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		resetAt time.Time
		buffer  time.Duration
		want    time.Duration
	}{
		{"future reset", now.Add(3600 * time.Second), 5 * time.Second, 3605 * time.Second},
		{"past reset waits buffer only", now.Add(-10 * time.Second), 5 * time.Second, 5 * time.Second},
		{"reset exactly now", now, 2 * time.Second, 2 * time.Second},
	}

	for _, tt := range tests {
		clock := &fakeClock{now: now}
		r := newFakeLimiter(clock)
		if err := r.WaitForReset(context.Background(), tt.resetAt, tt.buffer); err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if len(clock.slept) != 1 || clock.slept[0] != tt.want {
			t.Errorf("%s: slept %v, want [%v]", tt.name, clock.slept, tt.want)
		}
	}
}

func TestWaitForResetCancelled(t *testing.T) {
	clock := &fakeClock{now: time.Now(), failAt: 1}
	r := newFakeLimiter(clock)

	err := r.WaitForReset(context.Background(), clock.now.Add(time.Hour), time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestHandleWithBackoffExhaustedReturnsOriginal(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	r := newFakeLimiter(clock, WithDeterministic())
	orig := NewError(KindRateLimit, "API rate limit exceeded")

	err := r.HandleWithBackoff(context.Background(), orig, 2, 2)
	if err != orig {
		t.Errorf("err = %v, want the original error unchanged", err)
	}
	if len(clock.slept) != 0 {
		t.Errorf("slept %v, want no sleep once exhausted", clock.slept)
	}
}

func TestHandleWithBackoffSleepsAndSignalsRetry(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	r := newFakeLimiter(clock, WithDeterministic())
	orig := NewError(KindRateLimit, "API rate limit exceeded")

	if err := r.HandleWithBackoff(context.Background(), orig, 1, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clock.slept) != 1 || clock.slept[0] != 4*time.Second {
		t.Errorf("slept %v, want [4s]", clock.slept)
	}
}

func TestHandleWithBackoffPrefersKnownReset(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: now}
	r := newFakeLimiter(clock, WithDeterministic(), WithResetBuffer(5*time.Second))

	resetAt := now.Add(30 * time.Second)
	orig := NewError(KindRateLimit, "API rate limit exceeded")
	orig.ResetAt = &resetAt

	if err := r.HandleWithBackoff(context.Background(), orig, 0, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clock.slept) != 1 || clock.slept[0] != 35*time.Second {
		t.Errorf("slept %v, want the reset wait plus buffer [35s]", clock.slept)
	}
}

func TestHandleWithBackoffIgnoresPastReset(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: now}
	r := newFakeLimiter(clock, WithDeterministic())

	resetAt := now.Add(-time.Minute)
	orig := NewError(KindRateLimit, "API rate limit exceeded")
	orig.ResetAt = &resetAt

	if err := r.HandleWithBackoff(context.Background(), orig, 0, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clock.slept) != 1 || clock.slept[0] != 2*time.Second {
		t.Errorf("slept %v, want plain backoff [2s]", clock.slept)
	}
}

func TestHandleWithBackoffTestMode(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	r := newFakeLimiter(clock, WithTestMode())
	orig := NewError(KindRateLimit, "API rate limit exceeded")

	if err := r.HandleWithBackoff(context.Background(), orig, 3, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clock.slept) != 1 || clock.slept[0] != testModeDelay {
		t.Errorf("slept %v, want the short fixed test delay", clock.slept)
	}
}

func TestDoRetriesOnlyRateLimit(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	r := newFakeLimiter(clock, WithTestMode())

	calls := 0
	err := r.Do(context.Background(), 5, func() error {
		calls++
		if calls < 3 {
			return NewError(KindRateLimit, "API rate limit exceeded")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}

	// Non rate limit errors are single-shot.
	calls = 0
	notFound := NewError(KindNotFound, "Issue not found")
	err = r.Do(context.Background(), 5, func() error {
		calls++
		return notFound
	})
	if err != notFound || calls != 1 {
		t.Errorf("err = %v after %d calls, want single-shot original", err, calls)
	}
}

func TestDoExhaustionPropagatesOriginal(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	r := newFakeLimiter(clock, WithTestMode())

	orig := NewError(KindRateLimit, "API rate limit exceeded")
	calls := 0
	err := r.Do(context.Background(), 2, func() error {
		calls++
		return orig
	})
	if err != orig {
		t.Errorf("err = %v, want the triggering error unchanged", err)
	}
	if calls != 3 { // initial call plus two retries
		t.Errorf("calls = %d, want 3", calls)
	}
}
