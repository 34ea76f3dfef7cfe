// Package clock provides an abstraction for time operations to improve
// testability. The temporal freshness and expiry rules compare created/expires
// timestamps against "now"; routing that reading through the Clock interface
// lets tests pin evaluation time instead of racing the system clock.
package clock

import "time"

// Clock is an interface for time operations.
// This allows code to be tested with mock clocks.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock pinned to a single instant. Rule evaluation against a
// Fixed clock is fully deterministic, which the idempotence property relies
// on in tests.
type Fixed struct {
	// Time is the instant Now always returns.
	Time time.Time
}

// Now returns the pinned instant.
func (f Fixed) Now() time.Time {
	return f.Time
}

// Ensure both implementations satisfy Clock.
var (
	_ Clock = RealClock{}
	_ Clock = Fixed{}
)
