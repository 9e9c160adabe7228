package main

import (
	"fmt"
	"io"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// statusWriter prints operator-facing lines, coloured only when w is a terminal.
type statusWriter struct {
	w        io.Writer
	colorize bool
}

func newStatusWriter(w io.Writer) statusWriter {
	return statusWriter{w: w, colorize: isTerminal(w)}
}

func (s statusWriter) println(color, msg string) {
	if s.colorize {
		msg = color + msg + ansiReset
	}
	fmt.Fprintln(s.w, msg)
}

func (s statusWriter) ok(format string, args ...any) {
	s.println(ansiGreen, fmt.Sprintf(format, args...))
}

func (s statusWriter) warn(format string, args ...any) {
	s.println(ansiYellow, fmt.Sprintf(format, args...))
}

func (s statusWriter) fail(format string, args ...any) {
	s.println(ansiRed, fmt.Sprintf(format, args...))
}

func (s statusWriter) header(format string, args ...any) {
	s.println(ansiBlue, fmt.Sprintf(format, args...))
}
