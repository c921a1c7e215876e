// Package watchdog implements the time-budget cancellation mechanism
// described in spec.md §5: a monotonic stopwatch and a shared "finished"
// flag, observed cooperatively by the saturation loop between given-clause
// iterations rather than by preemptive interruption. It is grounded on the
// OLM signal-context pattern (pkg/lib/signals), adapted from OS-signal
// cancellation to a wall-clock deadline.
package watchdog

import (
	"context"
	"sync/atomic"
	"time"
)

// PollInterval is the coarse wake resolution the watchdog goroutine uses to
// re-check the deadline (spec.md §5: "waking on a coarse resolution
// (≈10 ms)"). It is a var, not a const, so tests can shrink it.
var PollInterval = 10 * time.Millisecond

// Watchdog observes a monotonic deadline and exposes a single flag that the
// saturation loop polls between given-clause iterations. It never touches
// clause data; the only cross-goroutine state is the flag itself.
type Watchdog struct {
	deadline time.Time
	expired  atomic.Bool
	cancel   context.CancelFunc
}

// Start launches a watchdog with the given time budget. The returned
// Watchdog's Expired method flips true once the budget elapses; Stop must
// be called to release the polling goroutine once the caller is done,
// whether or not the deadline was reached.
func Start(budget time.Duration) *Watchdog {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watchdog{
		deadline: time.Now().Add(budget),
		cancel:   cancel,
	}
	go w.run(ctx)
	return w
}

func (w *Watchdog) run(ctx context.Context) {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if !now.Before(w.deadline) {
				w.expired.Store(true)
				return
			}
		}
	}
}

// Expired reports whether the time budget has elapsed. Safe to call from
// the saturation worker at any given-clause boundary (spec.md §5: "the only
// point at which the loop observes cancellation is between given-clause
// iterations").
func (w *Watchdog) Expired() bool {
	if w.expired.Load() {
		return true
	}
	if !time.Now().Before(w.deadline) {
		w.expired.Store(true)
		return true
	}
	return false
}

// Remaining returns the time left before the deadline, or zero if it has
// already passed.
func (w *Watchdog) Remaining() time.Duration {
	d := time.Until(w.deadline)
	if d < 0 {
		return 0
	}
	return d
}

// Stop releases the polling goroutine. Idempotent.
func (w *Watchdog) Stop() {
	w.cancel()
}
