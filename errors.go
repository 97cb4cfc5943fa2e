package main

import "fmt"

// UsageError reports bad command-line arguments. The process exits 1
// before any transport is opened.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// TransportOpenError reports a device that could not be opened or configured.
type TransportOpenError struct {
	Device string
	Err    error
}

func (e *TransportOpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Device, e.Err)
}

func (e *TransportOpenError) Unwrap() error { return e.Err }

// TransportWriteError reports a failed write or flush during transmission.
type TransportWriteError struct {
	Op  string // "write" or "flush"
	Err error
}

func (e *TransportWriteError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportWriteError) Unwrap() error { return e.Err }
