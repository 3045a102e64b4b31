// internal/clock/clock.go
// Clock port — the only source of "now" for every service. No library in
// the example pack offers a clock abstraction; this is a small enough
// surface (Now/After/At plus a cancellable timer) that pulling in a
// third-party scheduling library would add a dependency to wrap three
// stdlib calls, so it stays on time.Time/time.Timer. See DESIGN.md.

package clock

import "time"

// Timer is a cancellable, one-shot notification.
type Timer interface {
	// C fires once when the timer elapses.
	C() <-chan time.Time
	// Stop cancels the timer. Returns false if it already fired or was
	// already stopped.
	Stop() bool
}

// Clock abstracts wall-clock time and timers so services are testable
// without real sleeps.
type Clock interface {
	Now() time.Time
	After(d time.Duration) Timer
	At(t time.Time) Timer
}

// Real is the production Clock, backed by the standard library.
type Real struct{}

func NewReal() Real { return Real{} }

func (Real) Now() time.Time { return time.Now() }

func (Real) After(d time.Duration) Timer {
	t := time.NewTimer(d)
	return realTimer{t}
}

func (Real) At(at time.Time) Timer {
	d := time.Until(at)
	if d < 0 {
		d = 0
	}
	t := time.NewTimer(d)
	return realTimer{t}
}

type realTimer struct{ t *time.Timer }

func (r realTimer) C() <-chan time.Time { return r.t.C }
func (r realTimer) Stop() bool          { return r.t.Stop() }
