//go:build linux || darwin || freebsd
// +build linux darwin freebsd

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// Special device names.
const (
	nullDevice = "/dev/null" // discard everything
	ptyDevice  = "pty"       // virtual serial port
)

// Transport is the byte sink packets are written to.
type Transport interface {
	io.Writer
	Flush() error
	Close() error
}

// discardTransport accepts and drops every write.
type discardTransport struct{}

func (discardTransport) Write(p []byte) (int, error) { return len(p), nil }
func (discardTransport) Flush() error { return nil }
func (discardTransport) Close() error { return nil }

// openTransport selects and opens the transport named by cfg.Device.
// Failures are returned as *TransportOpenError and are never retried.
func openTransport(ctx context.Context, cfg *Config, logger *slog.Logger) (Transport, error) {
	switch cfg.Device {
	case nullDevice:
		logger.Info("discarding packets", "device", cfg.Device)
		return discardTransport{}, nil

	case ptyDevice:
		p, err := openPTY(logger)
		if err != nil {
			return nil, &TransportOpenError{Device: cfg.Device, Err: err}
		}
		// The receiver needs the path regardless of log level.
		fmt.Fprintf(os.Stderr, "virtual serial port: %s\n", p.Name())
		logger.Info("virtual serial port ready", "path", p.Name(), "pace", cfg.Pace)
		if cfg.Pace {
			paced := newPacedTransport(ctx, p, cfg.Baud, cfg.BitsPerByte)
			wire := paced.byteTime() * time.Duration(len(Encode(0)))
			logger.Info("pacing output", "byte_time", paced.byteTime(), "packet_time", wire)
			if wire > cfg.Interval {
				logger.Warn("packet takes longer on the wire than one interval; ticks will be skipped",
					"packet_time", wire, "interval", cfg.Interval)
			}
			return paced, nil
		}
		return p, nil

	default:
		s, err := openSerial(cfg.Device, cfg.Baud)
		if err != nil {
			return nil, &TransportOpenError{Device: cfg.Device, Err: err}
		}
		if cfg.Pace {
			logger.Warn("--pace ignored: serial hardware paces its own output", "device", cfg.Device)
		}
		logger.Info("serial port open", "device", cfg.Device, "baud", cfg.Baud, "framing", "8N1")
		return s, nil
	}
}
