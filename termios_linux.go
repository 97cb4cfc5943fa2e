//go:build linux
// +build linux

package main

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETS
)

// drainOutput waits until output written to fd has been transmitted (tcdrain).
func drainOutput(fd int) error {
	return unix.IoctlSetInt(fd, unix.TCSBRK, 1)
}

// discardInput drops data received on fd but not yet read (tcflush TCIFLUSH).
func discardInput(fd int) error {
	return unix.IoctlSetInt(fd, unix.TCFLSH, unix.TCIFLUSH)
}
