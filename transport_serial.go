package main

import (
	"fmt"

	"github.com/tarm/serial"
)

// serialTransport writes to a real serial line at 8N1 with no flow control.
type serialTransport struct {
	port *serial.Port
}

func openSerial(device string, baud int) (*serialTransport, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:     device,
		Baud:     baud,
		Size:     8,
		Parity:   serial.ParityNone,
		StopBits: serial.Stop1,
		// Zero read timeout: reads block.
		ReadTimeout: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("configure %d 8N1: %w", baud, err)
	}
	return &serialTransport{port: port}, nil
}

func (s *serialTransport) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

// Flush is a no-op. Writes to the port are synchronous write(2) calls, and
// serial.Port.Flush discards queued output rather than draining it.
func (s *serialTransport) Flush() error {
	return nil
}

func (s *serialTransport) Close() error {
	if s.port != nil {
		return s.port.Close()
	}
	return nil
}
