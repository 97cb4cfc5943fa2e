package main

import (
	"bytes"
	"context"
	"io"
)

// Buffer sizes for the input reader
const (
	inputBufferSize = 8192 // Size of one read from the input source
	inputChanBuffer = 16   // Channel buffer for chunks not yet consumed
)

// Keys that end the run in single-key mode, where the terminal no longer
// turns Ctrl-C into SIGINT.
var quitKeys = []byte{'q', 'Q', 0x03}

// readInput reads r in its own goroutine and delivers each chunk on the
// returned channel. The channel is closed on EOF or read error.
//
// In single-key mode a chunk containing a quit key calls quit instead of
// being delivered.
func readInput(ctx context.Context, r io.Reader, singleKey bool, quit func()) <-chan []byte {
	ch := make(chan []byte, inputChanBuffer)

	go func() {
		defer close(ch)
		buf := make([]byte, inputBufferSize)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				data := make([]byte, n)
				copy(data, buf[:n])
				if singleKey && bytes.ContainsAny(data, string(quitKeys)) {
					quit()
					return
				}
				select {
				case ch <- data:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	return ch
}

// drainInput consumes every chunk already queued on ch without blocking.
// It reports whether ch was found closed.
func drainInput(ch <-chan []byte) (closed bool) {
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return true
			}
		default:
			return false
		}
	}
}
