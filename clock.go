package main

import "time"

// clock abstracts wall-clock reads and timers so the tracker and the
// transmission loop can run against a synthetic clock in tests.
type clock interface {
	Now() time.Time
	NewTimer(d time.Duration) *time.Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTimer(d time.Duration) *time.Timer { return time.NewTimer(d) }
