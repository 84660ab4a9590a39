package progress

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the status stream can display.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
}

// Symbols holds the glyphs used for status lines and the spinner.
type Symbols struct {
	Checkmark  string
	Failure    string
	Warning    string
	SpinnerSet int // index into spinner.CharSets
}

// DetectTerminalCapabilities inspects f (normally stderr) together with the
// NO_COLOR and CHANGELOG_ASCII environment variables.
func DetectTerminalCapabilities(f *os.File) TerminalCapabilities {
	if f == nil {
		return TerminalCapabilities{}
	}

	fd := int(f.Fd())
	isTTY := term.IsTerminal(fd)

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("CHANGELOG_ASCII") == "1"

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
	}
}

// SelectSymbols returns Unicode glyphs with the braille spinner (set 14), or
// ASCII ones with the |/-\ spinner (set 9).
func SelectSymbols(caps TerminalCapabilities) Symbols {
	if caps.SupportsUnicode {
		return Symbols{
			Checkmark:  "✓",
			Failure:    "✗",
			Warning:    "!",
			SpinnerSet: 14,
		}
	}

	return Symbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		Warning:    "[WARN]",
		SpinnerSet: 9,
	}
}
