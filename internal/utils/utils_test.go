package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitFor(t *testing.T) {
	original := newTimer
	defer func() { newTimer = original }()

	var requested time.Duration
	newTimer = func(d time.Duration) (<-chan time.Time, func() bool) {
		requested = d
		fired := make(chan time.Time, 1)
		fired <- time.Now()
		return fired, func() bool { return false }
	}

	if err := WaitFor(context.Background(), 250*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requested != 250*time.Millisecond {
		t.Fatalf("expected to wait 250ms, waited %s", requested)
	}
}

func TestWaitForCancelledStopsTimer(t *testing.T) {
	original := newTimer
	defer func() { newTimer = original }()

	stopped := false
	newTimer = func(time.Duration) (<-chan time.Time, func() bool) {
		return make(chan time.Time), func() bool {
			stopped = true
			return true
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !stopped {
		t.Fatal("expected the timer to be stopped after cancellation")
	}

	if err := WaitFor(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled for zero delay, got %v", err)
	}
}

func TestWaitForRealTimer(t *testing.T) {
	start := time.Now()
	if err := WaitFor(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("returned after %s, before the delay", elapsed)
	}
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		attempt int
		expect  time.Duration
	}{
		{name: "no delay before first attempt", attempt: 0, expect: 0},
		{name: "first retry uses base", attempt: 1, expect: 500 * time.Millisecond},
		{name: "second retry doubles", attempt: 2, expect: time.Second},
		{name: "third retry doubles again", attempt: 3, expect: 2 * time.Second},
		{name: "capped by limit", attempt: 10, expect: 3 * time.Second},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Backoff(tt.attempt, 500*time.Millisecond, 3*time.Second); got != tt.expect {
				t.Fatalf("expected %s, got %s", tt.expect, got)
			}
		})
	}
}
