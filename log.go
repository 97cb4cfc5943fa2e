package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/phsym/console-slog"
	"golang.org/x/term"
)

// newLogger returns a console logger writing to w. Colors are used only
// when w is a terminal.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return slog.New(console.NewHandler(w, &console.HandlerOptions{
		Level:   level,
		NoColor: !color,
	}))
}
