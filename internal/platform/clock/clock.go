package clock

import "time"

// Clock allows injecting time into services. The scan-suppression window is
// computed from instants read through this interface; under the system
// clock those instants carry Go's monotonic reading, so comparisons stay
// correct across wall-clock adjustments.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Fixed is a clock that returns a settable instant, for tests.
type Fixed struct {
	now time.Time
}

// NewFixed returns a clock pinned to the given instant.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t}
}

func (f *Fixed) Now() time.Time { return f.now }

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.now = f.now.Add(d) }
