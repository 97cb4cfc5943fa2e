package main

import "time"

// Tracker converts wall-clock samples into elapsed running time and keeps
// accumulated time across pause/resume.
//
// While running, elapsed = now - ref. While paused, elapsed is frozen at the
// value captured when the pause began.
type Tracker struct {
	now     func() time.Time
	running bool
	ref     time.Time
	last    time.Duration
}

// NewTracker returns a running tracker that already shows offset.
func NewTracker(now func() time.Time, offset time.Duration) *Tracker {
	if offset < 0 {
		offset = 0
	}
	return &Tracker{
		now:     now,
		running: true,
		ref:     now().Add(-offset),
		last:    offset,
	}
}

// Running reports whether time is currently advancing.
func (t *Tracker) Running() bool {
	return t.running
}

// Elapsed returns the current reportable elapsed time.
func (t *Tracker) Elapsed() time.Duration {
	if !t.running {
		return t.last
	}
	d := t.now().Sub(t.ref)
	if d < 0 {
		return 0
	}
	return d
}

// Toggle switches between running and paused and returns the new state.
func (t *Tracker) Toggle() bool {
	if t.running {
		t.last = t.Elapsed()
		t.running = false
	} else {
		t.ref = t.now().Add(-t.last)
		t.running = true
	}
	return t.running
}
