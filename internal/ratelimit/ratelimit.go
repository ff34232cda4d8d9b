// Package ratelimit implements the sliding-window throttle applied to
// question submission. The remote Genie API allows 5 queries per minute;
// this limiter makes excess callers wait rather than fail.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Package-level variables for testability.
var (
	timeNow = time.Now
)

// Limiter allows at most maxRequests timestamps within any trailing
// window. Acquire blocks (never rejects); concurrent callers are
// serialized by the mutex so they queue rather than race past the limit.
type Limiter struct {
	maxRequests int
	window      time.Duration

	mu     sync.Mutex
	stamps []time.Time
}

// New creates a limiter. Non-positive arguments fall back to the Genie
// API defaults (5 requests per 60 seconds).
func New(maxRequests int, window time.Duration) *Limiter {
	if maxRequests <= 0 {
		maxRequests = 5
	}
	if window <= 0 {
		window = 60 * time.Second
	}
	return &Limiter{maxRequests: maxRequests, window: window}
}

// Acquire obtains a request slot, suspending until one is available.
// It only fails when ctx is cancelled during the wait.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := timeNow()
	l.evict(now)

	if len(l.stamps) >= l.maxRequests {
		wait := l.window - now.Sub(l.stamps[0])
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		// The clock may have advanced past the minimum wait.
		l.evict(timeNow())
	}

	l.stamps = append(l.stamps, timeNow())
	return nil
}

// Reset clears all tracked requests.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stamps = nil
}

// evict drops timestamps that have left the trailing window.
// Caller holds the mutex.
func (l *Limiter) evict(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.stamps) && !l.stamps[i].After(cutoff) {
		i++
	}
	l.stamps = l.stamps[i:]
}
