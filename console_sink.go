package ringlog

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ConsoleSink routes WARN and above to the error stream and everything
// else to standard output, one formatted line per record. Color is enabled
// when either stream is a terminal, unless the decision is forced.
type ConsoleSink struct {
	sinkCore
	useColor bool
	stdout   io.Writer
	stderr   io.Writer
}

// NewConsoleSink creates a console sink with TTY-based color detection.
func NewConsoleSink() *ConsoleSink {
	return newConsoleSink(nil)
}

// NewConsoleSinkColor creates a console sink with the color decision
// forced on or off, ignoring the TTY state.
func NewConsoleSinkColor(forceColor bool) *ConsoleSink {
	return newConsoleSink(&forceColor)
}

func newConsoleSink(force *bool) *ConsoleSink {
	s := &ConsoleSink{stdout: os.Stdout, stderr: os.Stderr}
	if force != nil {
		s.useColor = *force
	} else {
		s.useColor = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) ||
			isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	}
	return s
}

// Write formats the record and emits it, with a trailing newline, to the
// stream selected by the record's level.
func (s *ConsoleSink) Write(rec *Record) {
	if !s.ShouldLog(rec.Level) {
		return
	}
	if s.formatter == nil {
		s.formatter = NewPatternFormatter(DefaultPattern, s.useColor)
	}
	n := s.format(rec)
	if n == 0 {
		return
	}
	target := s.stdout
	if rec.Level >= WARN {
		target = s.stderr
	}
	target.Write(s.buf[:n])
	target.Write(newlineByte)
}

// Flush is a no-op: os.File writes are unbuffered.
func (s *ConsoleSink) Flush() {}
