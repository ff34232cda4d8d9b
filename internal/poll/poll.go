// Package poll provides a generic fixed-interval long-poll primitive for
// remote operations that expose a status-check call.
package poll

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout is returned when an operation does not complete within its
// deadline. It is a distinct condition from a remote-reported failure:
// "we gave up waiting" is not "the remote engine failed".
var ErrTimeout = errors.New("poll: timed out")

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// CheckFunc performs one status check. done reports whether the
// operation reached a terminal state; value is only meaningful when done
// is true. A non-nil error aborts polling immediately.
type CheckFunc[T any] func() (done bool, value T, err error)

// UntilComplete invokes check until it reports done, the timeout
// elapses, or ctx is cancelled. Between checks it genuinely suspends for
// interval — fixed, no backoff or jitter. The timeout is evaluated after
// each check, so a check that completes exactly at the deadline still
// returns its value.
func UntilComplete[T any](ctx context.Context, check CheckFunc[T], timeout, interval time.Duration) (T, error) {
	var zero T
	start := timeNow()

	for {
		done, value, err := check()
		if err != nil {
			return zero, err
		}
		if done {
			return value, nil
		}

		if timeNow().Sub(start) >= timeout {
			return zero, fmt.Errorf("%w after %s; consider increasing the timeout", ErrTimeout, timeout)
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}
