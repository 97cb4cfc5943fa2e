package main

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeKnownPacket(t *testing.T) {
	p := Encode(83450 * time.Millisecond)

	assert.Equal(t, Packet(" 12345O\n\r"), p)
	assert.Equal(t, "12345", p.Digits())
	assert.Equal(t, byte('O'), p.Checksum())
	assert.Equal(t, " 12345O", p.String())
	assert.Len(t, p.Bytes(), 9)
}

func TestEncodeZeroAndNegative(t *testing.T) {
	assert.Equal(t, Packet(" 00000@\n\r"), Encode(0))
	assert.Equal(t, Packet(" 00000@\n\r"), Encode(-5*time.Second))
}

func TestEncodeMinutesTierRoundTrip(t *testing.T) {
	for ms := int64(0); ms < tierMinutesLimit*1000; ms += 7 {
		d := time.Duration(ms) * time.Millisecond
		digits := Encode(d).Digits()
		require.Len(t, digits, 5, "d=%v", d)

		minutes, _ := strconv.Atoi(digits[0:1])
		seconds, _ := strconv.Atoi(digits[1:3])
		centis, _ := strconv.Atoi(digits[3:5])
		require.Less(t, seconds, 60)

		decoded := time.Duration(minutes)*time.Minute +
			time.Duration(seconds)*time.Second +
			time.Duration(centis)*10*time.Millisecond
		require.Equal(t, d.Truncate(10*time.Millisecond), decoded, "d=%v digits=%s", d, digits)
	}
}

func TestEncodeRoundsToMillisecond(t *testing.T) {
	// 1.2399996s rounds up to 1.240s before centiseconds are taken.
	assert.Equal(t, "00124", Encode(1239999600*time.Nanosecond).Digits())
	assert.Equal(t, "00123", Encode(1239400*time.Microsecond).Digits())
}

func TestEncodeChecksumProperty(t *testing.T) {
	samples := []time.Duration{
		0,
		999 * time.Millisecond,
		59*time.Second + 990*time.Millisecond,
		9*time.Minute + 59*time.Second + 990*time.Millisecond,
		10 * time.Minute,
		9*time.Hour + 59*time.Minute + 59*time.Second,
		10 * time.Hour,
		999*time.Hour + 59*time.Minute,
		1000 * time.Hour,
		50000 * time.Hour,
	}
	for ms := int64(0); ms < 4000*3600*1000; ms = ms*3 + 1013 {
		samples = append(samples, time.Duration(ms)*time.Millisecond)
	}

	for _, d := range samples {
		p := Encode(d)
		sum := 0
		for _, c := range p.Digits() {
			require.True(t, c >= '0' && c <= '9', "non-digit in %q", p)
			sum += int(c - '0')
		}
		assert.Equal(t, byte(64+sum), p.Checksum(), "d=%v", d)
		assert.Less(t, p.Checksum(), byte(128), "d=%v", d)
		assert.Equal(t, byte(' '), p[0])
		assert.Equal(t, Terminator, string(p[len(p)-2:]))
	}
}

func TestEncodeTierBoundaries(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"last minutes-tier value", 10*time.Minute - time.Millisecond, "95999"},
		{"first hours-tier value", 10 * time.Minute, "01000"},
		{"hours tier", 2*time.Hour + 3*time.Minute + 4*time.Second, "20304"},
		{"last hours-tier value", 10*time.Hour - time.Millisecond, "95959"},
		{"first coarse-tier value", 10 * time.Hour, "01000"},
		{"coarse tier", 123*time.Hour + 45*time.Minute + 30*time.Second, "12345"},
		{"last coarse-tier value", 1000*time.Hour - time.Millisecond, "99959"},
		{"saturated", 1000 * time.Hour, "999999"},
		{"far past saturation", 100000 * time.Hour, "999999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.d).Digits())
		})
	}
}

func TestEncodeSaturatedPacket(t *testing.T) {
	for _, d := range []time.Duration{
		1000 * time.Hour,
		1000*time.Hour - time.Millisecond/2,
		math.MaxInt64 - 100000,
		math.MaxInt64,
	} {
		assert.Equal(t, Packet(" 999999v\n\r"), Encode(d), "d=%d", int64(d))
	}
}

func TestStatePackets(t *testing.T) {
	tests := []struct {
		state State
		tag   byte
		name  string
	}{
		{StateLeft, 'L', "left"},
		{StateRight, 'R', "right"},
		{StateBoth, 'C', "both"},
		{StateReady, 'A', "ready"},
		{StateReset, 'I', "reset"},
		{StateStopped, 'S', "stopped"},
	}
	for _, tt := range tests {
		p := tt.state.Packet()
		assert.Len(t, p.Bytes(), 9, tt.name)
		assert.Equal(t, tt.tag, p[0], tt.name)
		assert.Equal(t, "00000", p.Digits(), tt.name)
		assert.Equal(t, checksum(p.Digits()), p.Checksum(), tt.name)
		assert.Equal(t, tt.name, tt.state.String())
	}

	assert.Equal(t, Packet(""), State(0).Packet())
	assert.Equal(t, "State(42)", State(42).String())
}
