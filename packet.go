package main

import (
	"fmt"
	"strings"
	"time"
)

// Terminator ends every packet. StackMat devices send LF before CR.
const Terminator = "\n\r"

// Checksum offset: the checksum byte is checksumBase plus the digit sum.
const checksumBase = '@'

// Tier limits, in whole seconds.
const (
	tierMinutesLimit = 10 * 60     // below: M SS CC
	tierHoursLimit   = 10 * 3600   // below: H MM SS
	tierCoarseLimit  = 1000 * 3600 // below: hundreds of hours, hours mod 100, MM
)

// saturatedDigits (9 99 999) is shown for anything past tierCoarseLimit.
const saturatedDigits = "999999"

// Packet is one encoded record as sent on the wire, terminator included.
type Packet string

// Bytes returns the wire encoding.
func (p Packet) Bytes() []byte {
	return []byte(p)
}

// Digits returns the digit field of a running-time packet, or the five
// zero digits of a device-state packet.
func (p Packet) Digits() string {
	s := strings.TrimSuffix(string(p), Terminator)
	if len(s) < 3 {
		return ""
	}
	return s[1 : len(s)-1]
}

// Checksum returns the checksum byte.
func (p Packet) Checksum() byte {
	s := strings.TrimSuffix(string(p), Terminator)
	if s == "" {
		return 0
	}
	return s[len(s)-1]
}

// String returns the packet without its terminator, for display.
func (p Packet) String() string {
	return strings.TrimSuffix(string(p), Terminator)
}

// checksum sums the decimal value of each digit and adds the '@' offset.
// The widest field (six nines) sums to 54, so the result never exceeds 'v'
// and stays in printable ASCII without wrapping.
func checksum(digits string) byte {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i] - '0')
	}
	return byte(checksumBase + sum)
}

func buildPacket(digits string) Packet {
	var b strings.Builder
	b.Grow(len(digits) + 4)
	b.WriteByte(' ')
	b.WriteString(digits)
	b.WriteByte(checksum(digits))
	b.WriteString(Terminator)
	return Packet(b.String())
}

// Encode renders a running time as a packet. The field layout depends on
// the magnitude of d; values past the last tier saturate at 9 99 999.
// Negative durations encode as zero. Encode never fails.
func Encode(d time.Duration) Packet {
	if d < 0 {
		d = 0
	}
	// Saturate before rounding; rounding near the top of the range overflows.
	if d >= tierCoarseLimit*time.Second {
		return buildPacket(saturatedDigits)
	}
	ms := int64((d + time.Millisecond/2) / time.Millisecond)
	sec, msec := ms/1000, ms%1000

	switch {
	case sec < tierMinutesLimit:
		return buildPacket(fmt.Sprintf("%d%02d%02d", sec/60, sec%60, msec/10))
	case sec < tierHoursLimit:
		return buildPacket(fmt.Sprintf("%d%02d%02d", sec/3600, sec/60%60, sec%60))
	case sec < tierCoarseLimit:
		return buildPacket(fmt.Sprintf("%d%02d%02d", sec/360000, sec/3600%100, sec/60%60))
	default:
		return buildPacket(saturatedDigits)
	}
}

// State is a device condition reported with a fixed packet instead of a time.
type State int

const (
	StateLeft State = iota + 1
	StateRight
	StateBoth
	StateReady
	StateReset
	StateStopped
)

var statePackets = map[State]Packet{
	StateLeft:    "L00000@" + Terminator,
	StateRight:   "R00000@" + Terminator,
	StateBoth:    "C00000@" + Terminator,
	StateReady:   "A00000@" + Terminator,
	StateReset:   "I00000@" + Terminator,
	StateStopped: "S00000@" + Terminator,
}

// Packet returns the fixed packet for s, or the empty packet for an
// unknown state.
func (s State) Packet() Packet {
	return statePackets[s]
}

func (s State) String() string {
	switch s {
	case StateLeft:
		return "left"
	case StateRight:
		return "right"
	case StateBoth:
		return "both"
	case StateReady:
		return "ready"
	case StateReset:
		return "reset"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}
