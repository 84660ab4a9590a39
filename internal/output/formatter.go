package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/masmgr/changelog-gen/internal/scoring"
)

// Compile-time interface conformance checks.
var (
	_ PreviewWriter = (*ConsolePreviewWriter)(nil)
	_ PreviewWriter = (*JSONPreviewWriter)(nil)
	_ PreviewWriter = (*CSVPreviewWriter)(nil)
	_ PreviewWriter = (*MarkdownPreviewWriter)(nil)
)

// OutputFormat represents the preview format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
)

// ParseFormat validates a --format value. An empty value selects the console format.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatConsole, nil
	case FormatConsole, FormatJSON, FormatCSV, FormatMarkdown:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected console, json, csv or markdown)", s)
	}
}

// OutputOptions controls preview rendering.
type OutputOptions struct {
	Format           OutputFormat
	HideScores       bool
	ShortHashLength  int
	MaxMessageLength int
	DateLayout       string
}

// PreviewReport is the selection shown by --preview.
type PreviewReport struct {
	Repository  string
	Since       *time.Time
	Until       *time.Time
	GeneratedAt time.Time
	Candidates  int // commits left after filtering
	Items       []scoring.ScoredCommit
}

// PreviewWriter writes preview reports.
type PreviewWriter interface {
	Write(w io.Writer, report *PreviewReport, options OutputOptions) error
}

// NewPreviewWriter creates a preview writer for the specified format.
func NewPreviewWriter(format OutputFormat) PreviewWriter {
	switch format {
	case FormatJSON:
		return &JSONPreviewWriter{}
	case FormatCSV:
		return &CSVPreviewWriter{}
	case FormatMarkdown:
		return &MarkdownPreviewWriter{}
	default:
		return &ConsolePreviewWriter{}
	}
}
