package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// TransmitterConfig controls the transmission loop.
type TransmitterConfig struct {
	Interval time.Duration // Tick period; packets go out on multiples of it
	State    State         // Fixed device state to send instead of time (0 = running time)

	// Status line handling
	Overwrite   bool // Rewrite the status line in place with CR
	RawTerminal bool // Terminal output processing is off; end lines with CR LF
}

// wakeReason says why the loop left its wait.
type wakeReason int

const (
	wakeTick wakeReason = iota
	wakeInput
	wakeCancel
)

// Transmitter drives the packet cadence. It owns the Tracker and borrows the
// Transport. All work happens on the goroutine that calls Run.
type Transmitter struct {
	config    TransmitterConfig
	transport Transport
	status    io.Writer // nil when the status line is disabled
	clock     clock
	tracker   *Tracker
	logger    *slog.Logger
}

// NewTransmitter creates a Transmitter. status may be nil.
func NewTransmitter(cfg TransmitterConfig, tr Transport, status io.Writer, clk clock, tracker *Tracker, logger *slog.Logger) *Transmitter {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	return &Transmitter{
		config:    cfg,
		transport: tr,
		status:    status,
		clock:     clk,
		tracker:   tracker,
		logger:    logger,
	}
}

// Run emits one packet per tick until ctx is cancelled. Each chunk read from
// input toggles pause/resume and triggers an immediate extra packet. A nil
// or closed input channel is never selected again.
//
// Run returns nil on cancellation and a *TransportWriteError if the
// transport fails. The status line is terminated in both cases.
func (t *Transmitter) Run(ctx context.Context, input <-chan []byte) error {
	defer t.finishStatus()

	start := t.clock.Now()
	t.logger.Info("transmitting", "interval", t.config.Interval, "state", t.stateName(), "elapsed", t.tracker.Elapsed())

	for {
		if err := t.emit(); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		timer := t.clock.NewTimer(t.untilNextTick(start))
		reason := t.wait(ctx, timer, &input)
		timer.Stop()

		switch reason {
		case wakeCancel:
			t.logger.Info("interrupted", "elapsed", t.tracker.Elapsed())
			return nil
		case wakeInput:
			if t.tracker.Toggle() {
				t.logger.Debug("resumed", "elapsed", t.tracker.Elapsed())
			} else {
				t.logger.Debug("paused", "elapsed", t.tracker.Elapsed())
			}
		}
	}
}

// wait blocks until the tick timer fires, input arrives, or ctx is done.
// Pending input is drained so one burst of keystrokes toggles once.
func (t *Transmitter) wait(ctx context.Context, timer *time.Timer, input *<-chan []byte) wakeReason {
	for {
		select {
		case <-ctx.Done():
			return wakeCancel
		case <-timer.C:
			return wakeTick
		case _, ok := <-*input:
			if !ok || drainInput(*input) {
				t.logger.Debug("input closed")
				*input = nil
				if !ok {
					continue
				}
			}
			return wakeInput
		}
	}
}

// untilNextTick returns the time left until the next tick boundary strictly
// after now. Boundaries sit at start + i*Interval, so late wake-ups do not
// accumulate drift, and overrun ticks are skipped rather than bunched.
func (t *Transmitter) untilNextTick(start time.Time) time.Duration {
	now := t.clock.Now()
	elapsed := now.Sub(start)
	if elapsed < 0 {
		return t.config.Interval
	}
	next := start.Add((elapsed/t.config.Interval + 1) * t.config.Interval)
	return next.Sub(now)
}

// packet returns what goes on the wire for the given elapsed time.
func (t *Transmitter) packet(elapsed time.Duration) Packet {
	if t.config.State != 0 {
		return t.config.State.Packet()
	}
	return Encode(elapsed)
}

// emit sends one packet: status line, write, flush.
func (t *Transmitter) emit() error {
	elapsed := t.tracker.Elapsed()
	p := t.packet(elapsed)

	t.writeStatus(elapsed, p)

	if _, err := t.transport.Write(p.Bytes()); err != nil {
		return &TransportWriteError{Op: "write", Err: err}
	}
	if err := t.transport.Flush(); err != nil {
		return &TransportWriteError{Op: "flush", Err: err}
	}
	return nil
}

// writeStatus mirrors the packet as "   H:MM:SS <packet>". The leading
// spaces keep an echoed ^C from covering the hours.
func (t *Transmitter) writeStatus(elapsed time.Duration, p Packet) {
	if t.status == nil {
		return
	}
	s := int64(elapsed / time.Second)
	end := "\n"
	if t.config.Overwrite {
		end = "\r"
	} else if t.config.RawTerminal {
		end = "\r\n"
	}
	fmt.Fprintf(t.status, "   %d:%02d:%02d %s  %s", s/3600, s/60%60, s%60, p, end)
}

// finishStatus moves off an in-place status line so the shell prompt does
// not overwrite it.
func (t *Transmitter) finishStatus() {
	if t.status == nil || !t.config.Overwrite {
		return
	}
	if t.config.RawTerminal {
		io.WriteString(t.status, "\r\n")
		return
	}
	io.WriteString(t.status, "\n")
}

func (t *Transmitter) stateName() string {
	if t.config.State == 0 {
		return "running"
	}
	return t.config.State.String()
}
