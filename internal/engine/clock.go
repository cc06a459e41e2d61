package engine

import "time"

// Clock abstracts wall-clock time so sessions can be driven by a
// controlled clock in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock used outside of tests.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
