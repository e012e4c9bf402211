package types

import "time"

// Clock abstracts time for testability. Time-dependent services take a Clock
// so tests can pin the wall clock (clockwork fake clocks satisfy this
// interface structurally).
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the real system time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }
