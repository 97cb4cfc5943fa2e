package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacedTransportByteTime(t *testing.T) {
	p := newPacedTransport(context.Background(), discardTransport{}, 1200, defaultBitsPerByte)
	assert.InDelta(t, float64(time.Second)/120, float64(p.byteTime()), float64(time.Microsecond))
}

func TestPacedTransportWritesByteByByte(t *testing.T) {
	// 1000 baud at 10 bits per byte = 100 bytes/sec = 10ms per byte.
	rec := &recordingTransport{}
	p := newPacedTransport(context.Background(), rec, 1000, defaultBitsPerByte)

	packet := Encode(83450 * time.Millisecond).Bytes()
	start := time.Now()
	n, err := p.Write(packet)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, len(packet), n)
	require.Len(t, rec.packets, len(packet))
	for i, w := range rec.packets {
		assert.Len(t, w, 1, "write %d", i)
	}

	// First byte goes out at once, the remaining eight wait 10ms each.
	assert.GreaterOrEqual(t, elapsed, 70*time.Millisecond)
	assert.LessOrEqual(t, elapsed, 200*time.Millisecond)
}

func TestPacedTransportPacketFitsTick(t *testing.T) {
	// At the StackMat line rate a running packet must fit inside one tick.
	rec := &recordingTransport{}
	p := newPacedTransport(context.Background(), rec, defaultBaud, defaultBitsPerByte)

	start := time.Now()
	_, err := p.Write(Encode(0).Bytes())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), defaultInterval)
}

func TestPacedTransportContextCancel(t *testing.T) {
	// 10 baud = 1 byte/sec; the deadline expires long before the packet is out.
	rec := &recordingTransport{}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	p := newPacedTransport(ctx, rec, 10, defaultBitsPerByte)

	start := time.Now()
	n, err := p.Write(Encode(0).Bytes())

	assert.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestPacedTransportPassesThroughFlushAndClose(t *testing.T) {
	rec := &recordingTransport{}
	p := newPacedTransport(context.Background(), rec, defaultBaud, defaultBitsPerByte)

	require.NoError(t, p.Flush())
	require.NoError(t, p.Close())
	assert.Equal(t, 1, rec.flushes)
}
