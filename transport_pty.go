//go:build linux || darwin || freebsd
// +build linux darwin freebsd

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// ptyTransport is a virtual serial port. Packets are written to the PTY
// master; a receiver opens the slave path as if it were a serial device.
//
// The master is non-blocking. When nobody reads the slave and its input
// queue fills, the stale bytes are discarded, the way an unattended serial
// line loses them, so transmission never stalls.
type ptyTransport struct {
	master  *os.File
	slave   *os.File
	fd      int
	slaveFd int
	logger  *slog.Logger
}

func openPTY(logger *slog.Logger) (*ptyTransport, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("open pty: %w", err)
	}

	p := &ptyTransport{
		master:  master,
		slave:   slave,
		fd:      int(master.Fd()),
		slaveFd: int(slave.Fd()),
		logger:  logger,
	}

	// Packet bytes must reach the receiver untranslated: no CR/NL mapping,
	// no echo back into the master.
	if err := makeRawTermios(p.slaveFd); err != nil {
		p.Close()
		return nil, fmt.Errorf("set raw mode: %w", err)
	}
	if err := unix.SetNonblock(p.fd, true); err != nil {
		p.Close()
		return nil, fmt.Errorf("set non-blocking: %w", err)
	}
	return p, nil
}

// Name returns the slave device path.
func (p *ptyTransport) Name() string {
	return p.slave.Name()
}

func (p *ptyTransport) Write(b []byte) (int, error) {
	written := 0
	discarded := false
	for written < len(b) {
		n, err := unix.Write(p.fd, b[written:])
		if n > 0 {
			written += n
		}
		switch {
		case err == nil && n > 0:
			continue
		case err != nil && !errors.Is(err, unix.EAGAIN):
			return written, err
		case discarded:
			return written, io.ErrShortWrite
		}

		if err := discardInput(p.slaveFd); err != nil {
			return written, fmt.Errorf("discard unread input: %w", err)
		}
		discarded = true
		p.logger.Debug("pty queue full, discarded unread packets", "path", p.Name())
	}
	return written, nil
}

func (p *ptyTransport) Flush() error {
	return drainOutput(p.fd)
}

func (p *ptyTransport) Close() error {
	errS := p.slave.Close()
	errM := p.master.Close()
	return errors.Join(errM, errS)
}

// makeRawTermios puts the terminal on fd into raw 8-bit mode.
func makeRawTermios(fd int) error {
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB
	t.Cflag |= unix.CS8
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
	return unix.IoctlSetTermios(fd, ioctlSetTermios, t)
}
