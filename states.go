package main

import (
	"fmt"
	"io"
)

// states maps --state names to device states.
var states = map[string]State{
	"left":    StateLeft,    // Left hand on the timer
	"right":   StateRight,   // Right hand on the timer
	"both":    StateBoth,    // Both hands on the timer
	"ready":   StateReady,   // Ready to start
	"reset":   StateReset,   // Timer reset
	"stopped": StateStopped, // Timer stopped
}

func lookupState(name string) (State, error) {
	s, ok := states[name]
	if !ok {
		return 0, usageErrorf("unknown state: %s (see --list-states)", name)
	}
	return s, nil
}

// printStates lists the states in device order with their packets.
func printStates(w io.Writer) {
	for s := StateLeft; s <= StateStopped; s++ {
		fmt.Fprintf(w, "  %-8s %s\n", s, s.Packet())
	}
}
