//go:build linux || darwin || freebsd
// +build linux darwin freebsd

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"
)

var version = "0.2.0"

// Defaults reproduce the StackMat line: 1200 baud 8N1, ten packets a second.
const (
	defaultBaud        = 1200
	defaultBitsPerByte = 10 // 8N1 serial: 1 start + 8 data + 1 stop
	defaultInterval    = 100 * time.Millisecond
	defaultLogLevel    = "warn"
)

// Config holds all command-line configuration
type Config struct {
	// Positional
	Device      string
	StartOffset time.Duration

	// Line
	Baud        int
	BitsPerByte int
	Pace        bool

	// Transmission
	Interval time.Duration
	State    State

	// Terminal
	SingleKey bool
	Quiet     bool
	LogLevel  slog.Level

	// Misc
	Help       bool
	Version    bool
	ListStates bool
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		printShortUsage(os.Stderr)
		os.Exit(1)
	}

	if cfg.Version {
		fmt.Printf("stackmat-clock %s\n", version)
		os.Exit(0)
	}

	if cfg.ListStates {
		printStates(os.Stdout)
		os.Exit(0)
	}

	os.Exit(run(cfg))
}

func printShortUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:   stackmat-clock [flags] <serial-device> [<start-time>]")
	fmt.Fprintln(w, "Example: stackmat-clock /dev/null")
	fmt.Fprintln(w, "Example: stackmat-clock /dev/ttyS0 1:23")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'stackmat-clock --help' for full options.")
}

// parseFlags parses args (without the program name) into a Config.
// Every returned error other than flag.ErrHelp is a *UsageError.
func parseFlags(args []string) (*Config, error) {
	cfg := &Config{
		BitsPerByte: defaultBitsPerByte,
	}

	fs := flag.NewFlagSet("stackmat-clock", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.SortFlags = false // Preserve definition order in help

	fs.IntVarP(&cfg.Baud, "baud", "b", defaultBaud, "Serial speed in bps (framing is always 8N1)")
	state := fs.StringP("state", "s", "", "Send a fixed device-state packet instead of running time")
	fs.BoolVarP(&cfg.SingleKey, "keys", "k", false, "Any key pauses/resumes, q quits (needs a terminal)")
	fs.BoolVarP(&cfg.Pace, "pace", "p", false, "Pace bytes at the wire rate on a virtual port")
	fs.DurationVarP(&cfg.Interval, "interval", "i", defaultInterval, "Packet interval")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Do not print the status line")
	logLevel := fs.String("log-level", defaultLogLevel, "Log level: debug, info, warn, error")
	fs.BoolVarP(&cfg.ListStates, "list-states", "L", false, "List device states for --state")
	fs.BoolVarP(&cfg.Help, "help", "h", false, "Show help")
	fs.BoolVarP(&cfg.Version, "version", "v", false, "Show version")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "stackmat-clock - emulate a StackMat timer on a serial line")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Sends the running time as StackMat packets ten times a second.")
		fmt.Fprintln(os.Stderr, "Press Enter to pause or resume; Ctrl-C stops.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: stackmat-clock [flags] <serial-device> [<start-time>]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Devices:")
		fmt.Fprintln(os.Stderr, "  /dev/null      discard packets")
		fmt.Fprintln(os.Stderr, "  pty            create a virtual serial port and print its path")
		fmt.Fprintln(os.Stderr, "  /dev/ttyS0     any other path is opened as a serial port")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start time: H:MM:SS, MM:SS or SS (whole seconds)")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  stackmat-clock /dev/ttyUSB0")
		fmt.Fprintln(os.Stderr, "  stackmat-clock --keys /dev/ttyUSB0 9:55")
		fmt.Fprintln(os.Stderr, "  stackmat-clock --pace pty")
		fmt.Fprintln(os.Stderr, "  stackmat-clock --state ready /dev/ttyUSB0")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{Msg: err.Error()}
	}

	if cfg.Help {
		fs.Usage()
		return cfg, flag.ErrHelp
	}
	if cfg.Version || cfg.ListStates {
		return cfg, nil
	}

	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 2 {
		return nil, usageErrorf("expected <serial-device> [<start-time>], got %d arguments", len(rest))
	}
	cfg.Device = rest[0]
	if len(rest) == 2 {
		offset, err := parseStartTime(rest[1])
		if err != nil {
			return nil, err
		}
		cfg.StartOffset = offset
	}

	if *state != "" {
		s, err := lookupState(*state)
		if err != nil {
			return nil, err
		}
		cfg.State = s
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		return nil, usageErrorf("invalid --log-level: %s", *logLevel)
	}
	if cfg.Baud <= 0 {
		return nil, usageErrorf("invalid --baud: %d", cfg.Baud)
	}
	if cfg.Interval <= 0 {
		return nil, usageErrorf("invalid --interval: %v", cfg.Interval)
	}

	return cfg, nil
}

func run(cfg *Config) int {
	logger := newLogger(os.Stderr, cfg.LogLevel)

	// Interrupt is normal termination; single-key mode cancels through cancel.
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	tr, err := openTransport(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer tr.Close()

	stdinIsTerminal := term.IsTerminal(int(os.Stdin.Fd()))
	stdoutIsTerminal := term.IsTerminal(int(os.Stdout.Fd()))

	// Raw mode only if BOTH stdin and stdout are terminals
	var oldState *term.State
	if cfg.SingleKey {
		if stdinIsTerminal && stdoutIsTerminal {
			oldState, err = term.MakeRaw(int(os.Stdin.Fd()))
			if err != nil {
				fmt.Fprintf(os.Stderr, "error setting raw mode: %v\n", err)
				return 1
			}
		} else {
			logger.Warn("--keys needs a terminal on stdin and stdout; using line input")
		}
	}
	restoreTerminal := func() {
		if oldState != nil {
			term.Restore(int(os.Stdin.Fd()), oldState)
			oldState = nil
		}
	}
	defer restoreTerminal()
	rawTerminal := oldState != nil

	var status io.Writer
	if !cfg.Quiet {
		status = os.Stdout
	}

	clk := realClock{}
	tracker := NewTracker(clk.Now, cfg.StartOffset)
	tx := NewTransmitter(TransmitterConfig{
		Interval:    cfg.Interval,
		State:       cfg.State,
		Overwrite:   stdoutIsTerminal,
		RawTerminal: rawTerminal,
	}, tr, status, clk, tracker, logger)

	input := readInput(ctx, os.Stdin, rawTerminal, cancel)
	runErr := tx.Run(ctx, input)

	restoreTerminal()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		return 1
	}
	logger.Info("stopped", "elapsed", tracker.Elapsed())
	return 0
}
