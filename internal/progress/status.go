// Package progress prints informational status lines and a spinner to the
// diagnostic stream. Everything here is muted by --silent.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Status writes informational lines to a diagnostic stream.
type Status struct {
	w       io.Writer
	silent  bool
	caps    TerminalCapabilities
	symbols Symbols

	info    *color.Color
	success *color.Color
	warn    *color.Color
}

// NewStatus creates a status printer writing to w. When w is an *os.File its
// terminal capabilities decide colour, glyphs and whether spinners run.
func NewStatus(w io.Writer, silent bool) *Status {
	var caps TerminalCapabilities
	if f, ok := w.(*os.File); ok {
		caps = DetectTerminalCapabilities(f)
	}

	s := &Status{
		w:       w,
		silent:  silent,
		caps:    caps,
		symbols: SelectSymbols(caps),
		info:    color.New(color.FgCyan),
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
	}
	if !caps.SupportsColor {
		s.info.DisableColor()
		s.success.DisableColor()
		s.warn.DisableColor()
	}
	return s
}

// Infof prints an informational line.
func (s *Status) Infof(format string, args ...interface{}) {
	if s.silent {
		return
	}
	s.info.Fprintf(s.w, format+"\n", args...)
}

// Successf prints a completion line prefixed with a checkmark.
func (s *Status) Successf(format string, args ...interface{}) {
	if s.silent {
		return
	}
	s.success.Fprintf(s.w, "%s %s\n", s.symbols.Checkmark, fmt.Sprintf(format, args...))
}

// Warnf prints a warning line.
func (s *Status) Warnf(format string, args ...interface{}) {
	if s.silent {
		return
	}
	s.warn.Fprintf(s.w, "%s %s\n", s.symbols.Warning, fmt.Sprintf(format, args...))
}

// Spin shows a spinner with the given label while fn runs. The spinner only
// runs on a terminal when not silent; otherwise fn runs unadorned.
func (s *Status) Spin(label string, fn func() error) error {
	if s.silent || !s.caps.IsTTY {
		return fn()
	}

	sp := spinner.New(spinner.CharSets[s.symbols.SpinnerSet], 100*time.Millisecond,
		spinner.WithWriter(s.w),
		spinner.WithSuffix(" "+label),
	)
	if !s.caps.SupportsColor {
		sp.Color("reset")
	}
	sp.Start()
	err := fn()
	sp.Stop()

	if err != nil {
		fmt.Fprintf(s.w, "%s %s\n", s.symbols.Failure, label)
	} else {
		fmt.Fprintf(s.w, "%s %s\n", s.symbols.Checkmark, label)
	}
	return err
}
