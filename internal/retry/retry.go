// Package retry provides a small bounded-retry abstraction so each call
// site declares its schedule instead of open-coding sleep loops.
package retry

import (
	"context"
	"time"
)

// Policy is a fixed retry schedule. Delays[i] is how long to wait before
// attempt i, so the number of attempts equals len(Delays) and the first
// entry is normally zero.
type Policy struct {
	Delays []time.Duration
}

// Attempts returns the number of attempts the policy allows.
func (p Policy) Attempts() int {
	return len(p.Delays)
}

// Run invokes fn once per scheduled attempt, sleeping the configured
// delay first. fn returns done=true to stop early; the error of the
// final invocation is returned. Sleeping is context-aware: cancellation
// aborts the schedule and returns the context error.
func (p Policy) Run(ctx context.Context, fn func(attempt int) (done bool, err error)) error {
	var err error

	for attempt := range p.Delays {
		if d := p.Delays[attempt]; d > 0 {
			timer := time.NewTimer(d)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		var done bool

		done, err = fn(attempt)
		if done {
			return err
		}
	}

	return err
}
