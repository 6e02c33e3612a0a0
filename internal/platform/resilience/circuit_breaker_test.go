package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold, halfOpenMax int, openTimeout time.Duration) (*CircuitBreaker, *time.Time) {
	current := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	breaker := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMax,
	})
	breaker.now = func() time.Time { return current }
	return breaker, &current
}

func TestCircuitBreaker_TripsAfterThreshold(t *testing.T) {
	t.Parallel()

	breaker, _ := newTestBreaker(3, 1, 15*time.Second)

	for i := 0; i < 2; i++ {
		if err := breaker.Allow(); err != nil {
			t.Fatalf("closed breaker must allow, got %v", err)
		}
		breaker.RecordFailure()
	}
	if breaker.State() != CircuitStateClosed {
		t.Fatalf("breaker below threshold must stay closed, state=%s", breaker.State())
	}

	breaker.RecordFailure()
	if breaker.State() != CircuitStateOpen {
		t.Fatalf("breaker at threshold must open, state=%s", breaker.State())
	}
	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("open breaker must reject, got %v", err)
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	t.Parallel()

	breaker, _ := newTestBreaker(2, 1, 15*time.Second)

	breaker.RecordFailure()
	breaker.RecordSuccess()
	breaker.RecordFailure()

	if breaker.State() != CircuitStateClosed {
		t.Fatalf("non-consecutive failures must not trip, state=%s", breaker.State())
	}
}

func TestCircuitBreaker_HalfOpenProbeRecovers(t *testing.T) {
	t.Parallel()

	breaker, current := newTestBreaker(1, 1, 15*time.Second)

	breaker.RecordFailure()
	if breaker.State() != CircuitStateOpen {
		t.Fatalf("expected open state, got %s", breaker.State())
	}

	*current = current.Add(16 * time.Second)
	if err := breaker.Allow(); err != nil {
		t.Fatalf("probe after open timeout must be allowed, got %v", err)
	}
	if breaker.State() != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", breaker.State())
	}
	// Only one probe at a time.
	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("second probe must be rejected, got %v", err)
	}

	breaker.RecordSuccess()
	if breaker.State() != CircuitStateClosed {
		t.Fatalf("successful probe must close the breaker, state=%s", breaker.State())
	}
}

func TestCircuitBreaker_HalfOpenProbeFailureReopens(t *testing.T) {
	t.Parallel()

	breaker, current := newTestBreaker(1, 1, 15*time.Second)

	breaker.RecordFailure()
	*current = current.Add(16 * time.Second)
	if err := breaker.Allow(); err != nil {
		t.Fatalf("probe must be allowed, got %v", err)
	}

	breaker.RecordFailure()
	if breaker.State() != CircuitStateOpen {
		t.Fatalf("failed probe must reopen the breaker, state=%s", breaker.State())
	}
	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("reopened breaker must reject, got %v", err)
	}
}
