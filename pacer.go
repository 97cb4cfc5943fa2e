package main

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// pacedTransport releases bytes to the underlying transport no faster than
// a serial line at the configured baud would, one byte at a time. It is used
// on sinks with no wire of their own (a PTY), so a receiver sees realistic
// per-byte timing.
type pacedTransport struct {
	Transport
	ctx     context.Context
	limiter *rate.Limiter
}

func newPacedTransport(ctx context.Context, t Transport, baud, bitsPerByte int) *pacedTransport {
	bytesPerSec := float64(baud) / float64(bitsPerByte)
	return &pacedTransport{
		Transport: t,
		ctx:       ctx,
		// Burst of one byte: smooth output, no initial burst.
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), 1),
	}
}

// byteTime returns how long one byte occupies the simulated wire.
func (p *pacedTransport) byteTime() time.Duration {
	return time.Duration(float64(time.Second) / float64(p.limiter.Limit()))
}

// Write blocks until every byte has been released or ctx is cancelled.
func (p *pacedTransport) Write(b []byte) (int, error) {
	for i := range b {
		if err := p.limiter.Wait(p.ctx); err != nil {
			return i, err
		}
		if _, err := p.Transport.Write(b[i : i+1]); err != nil {
			return i, err
		}
	}
	return len(b), nil
}
