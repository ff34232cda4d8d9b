package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestUnderLimitDoesNotBlock(t *testing.T) {
	l := New(3, time.Minute)
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Acquire(context.Background()); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("three acquires under a limit of three took %s", elapsed)
	}
}

func TestExcessCallerWaitsForWindow(t *testing.T) {
	window := 50 * time.Millisecond
	l := New(2, window)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Acquire(context.Background()); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
	}
	elapsed := time.Since(start)

	// The third acquire must wait until the first timestamp leaves the
	// window. It never fails; it only waits.
	if elapsed < window {
		t.Errorf("third acquire returned after %s, want at least %s", elapsed, window)
	}
}

func TestAcquireNeverRejects(t *testing.T) {
	l := New(1, 20*time.Millisecond)
	for i := 0; i < 4; i++ {
		if err := l.Acquire(context.Background()); err != nil {
			t.Fatalf("acquire %d returned error %v; the limiter must wait, not reject", i, err)
		}
	}
}

func TestContextCancelDuringWait(t *testing.T) {
	l := New(1, time.Hour)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := l.Acquire(ctx)
	if err == nil {
		t.Fatal("expected context error while waiting out an hour-long window")
	}
	if ctx.Err() == nil {
		t.Error("context should be expired")
	}
}

func TestReset(t *testing.T) {
	l := New(1, time.Hour)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	l.Reset()

	start := time.Now()
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("acquire after reset took %s, want no wait", elapsed)
	}
}

func TestDefaults(t *testing.T) {
	l := New(0, 0)
	if l.maxRequests != 5 {
		t.Errorf("maxRequests = %d, want 5", l.maxRequests)
	}
	if l.window != 60*time.Second {
		t.Errorf("window = %s, want 60s", l.window)
	}
}
