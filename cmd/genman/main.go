//go:build ignore

// genman generates the stackmat-clock man page.
// Usage: go run cmd/genman/main.go > stackmat-clock.1
package main

import (
	"fmt"
	"os"
)

func main() {
	// Use a fixed date for reproducible builds/CI
	date := "October 2026"

	manpage := fmt.Sprintf(`.TH STACKMAT-CLOCK 1 "%s" "stackmat-clock 0.2.0" "User Commands"
.SH NAME
stackmat-clock \- emulate a StackMat timer on a serial line
.SH SYNOPSIS
.B stackmat-clock
[\fIflags\fR] \fIdevice\fR [\fIstart-time\fR]
.SH DESCRIPTION
.B stackmat-clock
sends the running time as StackMat timer packets, ten times a second,
so that timing software can be tested without a physical timer.
.PP
Each packet is a space, five digits, a checksum character and LF CR.
Below 10 minutes the digits are M SS CC (minutes, seconds, centiseconds);
below 10 hours H MM SS; below 1000 hours the hours are coarsened and minutes
are shown. Larger times saturate at 9 99 999.
.PP
Press Enter to pause or resume. While paused the frozen time keeps being
sent. Ctrl-C stops.
.SH DEVICES
.TP
.B /dev/null
Discard packets; only the status line is printed.
.TP
.B pty
Create a virtual serial port and print the path of its slave side.
.TP
.I path
Open \fIpath\fR as a serial port at 8N1 without flow control.
.SH START TIME
\fBH:MM:SS\fR, \fBMM:SS\fR or \fBSS\fR, whole seconds. Negative or malformed
values are rejected.
.SH OPTIONS
.TP
.BR \-b ", " \-\-baud " \fIbps\fR"
Serial speed (default: 1200).
.TP
.BR \-s ", " \-\-state " \fIname\fR"
Send a fixed device-state packet instead of the time: left, right, both,
ready, reset, stopped.
.TP
.BR \-k ", " \-\-keys
Single-key mode: any key pauses or resumes, \fBq\fR or Ctrl-C quits.
Requires a terminal on stdin and stdout.
.TP
.BR \-p ", " \-\-pace
Release bytes on a virtual port at the wire rate of \fB\-\-baud\fR.
.TP
.BR \-i ", " \-\-interval " \fIduration\fR"
Packet interval (default: 100ms).
.TP
.BR \-q ", " \-\-quiet
Do not print the status line.
.TP
.B \-\-log\-level \fIlevel\fR
debug, info, warn or error (default: warn). Logs go to stderr.
.TP
.BR \-L ", " \-\-list\-states
List device states and their packets.
.TP
.BR \-h ", " \-\-help
Show help message.
.TP
.BR \-v ", " \-\-version
Show version information.
.SH EXAMPLES
Drive timing software through a USB serial adapter:
.PP
.RS
.nf
stackmat-clock /dev/ttyUSB0
.fi
.RE
.PP
Start just before the 10 minute display change:
.PP
.RS
.nf
stackmat-clock /dev/ttyUSB0 9:55
.fi
.RE
.PP
Virtual port with realistic byte timing:
.PP
.RS
.nf
stackmat-clock \-\-pace pty
.fi
.RE
.SH EXIT STATUS
0 after an interrupt, 1 on a usage error or a transport failure.
.SH ENVIRONMENT
.B stackmat-clock
does not use any environment variables.
.SH SEE ALSO
.BR stty (1),
.BR pty (7)
`, date)

	fmt.Fprint(os.Stdout, manpage)
}
