// verify_cadence checks a StackMat packet stream for checksum errors and
// measures packet inter-arrival times.
//
// Usage:
//
//	stackmat-clock --pace pty            # prints /dev/pts/N
//	go run ./cmd/verify_cadence /dev/pts/N
//
// With no argument the stream is read from stdin. A device argument is
// opened as a 1200 baud 8N1 serial port.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tarm/serial"
)

var terminator = []byte("\n\r")

// splitPackets is a bufio.SplitFunc yielding packets without terminator.
func splitPackets(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.Index(data, terminator); i >= 0 {
		return i + len(terminator), data[:i], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// valid reports whether p (without terminator) carries a correct checksum.
func valid(p []byte) bool {
	if len(p) < 3 {
		return false
	}
	digits, sum := p[1:len(p)-1], 0
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
		sum += int(c - '0')
	}
	return p[len(p)-1] == byte('@'+sum)
}

func open() (io.ReadCloser, error) {
	if len(os.Args) < 2 {
		return os.Stdin, nil
	}
	return serial.OpenPort(&serial.Config{Name: os.Args[1], Baud: 1200, Size: 8})
}

func main() {
	src, err := open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	scanner := bufio.NewScanner(src)
	scanner.Split(splitPackets)

	var (
		count, bad int
		prev       time.Time
		sum        time.Duration
		min, max   time.Duration
	)
	min = 100 * time.Second // Start high

	for scanner.Scan() {
		now := time.Now()
		p := scanner.Bytes()
		count++
		if !valid(p) {
			bad++
			fmt.Printf("bad packet %d: %q\n", count, p)
		}
		if count > 1 {
			delta := now.Sub(prev)
			sum += delta
			if delta < min {
				min = delta
			}
			if delta > max {
				max = delta
			}
		}
		prev = now
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	fmt.Printf("Packets: %d | Bad checksum: %d\n", count, bad)
	if count > 1 {
		avg := sum / time.Duration(count-1)
		fmt.Printf("Interval min: %v | max: %v | avg: %v\n", min, max, avg)
	}
}
