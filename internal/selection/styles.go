package selection

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor = lipgloss.Color("#2DA44E")
	cursorColor = lipgloss.Color("#0969DA")
	dimColor    = lipgloss.Color("#6E7681")
	warnColor   = lipgloss.Color("#D29922")
)

// styles holds the checklist styles for one output stream.
type styles struct {
	title     lipgloss.Style
	cursor    lipgloss.Style
	checked   lipgloss.Style
	rationale lipgloss.Style
	help      lipgloss.Style
	errMsg    lipgloss.Style
}

// newStyles builds styles whose colour profile is detected from w, the
// stream the checklist is drawn on.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().
			Foreground(accentColor).
			Bold(true),
		cursor: r.NewStyle().
			Foreground(cursorColor).
			Bold(true),
		checked: r.NewStyle().
			Foreground(accentColor),
		rationale: r.NewStyle().
			Foreground(dimColor),
		help: r.NewStyle().
			Foreground(dimColor).
			Italic(true),
		errMsg: r.NewStyle().
			Foreground(warnColor),
	}
}
