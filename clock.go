package bramble

import "time"

// Clock is a monotonic time source.
type Clock interface {
	// Now returns the time elapsed since an arbitrary fixed origin.
	Now() time.Duration
}

type systemClock struct {
	origin time.Time
}

// SystemClock returns a Clock backed by the monotonic wall clock.
func SystemClock() Clock {
	return &systemClock{origin: time.Now()}
}

func (c *systemClock) Now() time.Duration {
	return time.Since(c.origin)
}

// ManualClock is a Clock that only moves when told to. Useful for
// deterministic replays and tests.
type ManualClock struct {
	now time.Duration
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Duration { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now += d }

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Duration) { c.now = t }
