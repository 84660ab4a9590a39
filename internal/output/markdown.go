package output

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownPreviewWriter writes the preview as a Markdown table.
type MarkdownPreviewWriter struct{}

// Write outputs the preview report as Markdown.
func (p *MarkdownPreviewWriter) Write(w io.Writer, report *PreviewReport, options OutputOptions) error {
	fmt.Fprintln(w, "# Changelog Preview")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "**Repository:** %s\n\n", escapeMarkdown(report.Repository))
	if label, value := dateRangeLabelAndValue(report.Since, report.Until); label != "" {
		fmt.Fprintf(w, "**%s:** %s\n\n", label, value)
	}
	fmt.Fprintf(w, "**Selected:** %d of %d candidate commits\n\n", len(report.Items), report.Candidates)

	if options.HideScores {
		fmt.Fprintln(w, "| # | Hash | Author | Date | Message |")
		fmt.Fprintln(w, "|---|------|--------|------|---------|")
	} else {
		fmt.Fprintln(w, "| # | Hash | Author | Date | Score | Message | Rationale |")
		fmt.Fprintln(w, "|---|------|--------|------|-------|---------|-----------|")
	}

	for i, item := range report.Items {
		hash := item.Commit.ShortSHA(options.shortHashLength())
		author := escapeMarkdown(item.Commit.Author.Name)
		date := item.Commit.When.Format(options.dateLayout())
		msg := escapeMarkdown(TruncateMessage(item.Commit.Subject(), options.maxMessageLength()))
		if options.HideScores {
			fmt.Fprintf(w, "| %d | `%s` | %s | %s | %s |\n", i+1, hash, author, date, msg)
		} else {
			fmt.Fprintf(w, "| %d | `%s` | %s | %s | %+d | %s | %s |\n",
				i+1, hash, author, date, item.Score, msg, escapeMarkdown(item.Rationale))
		}
	}

	return nil
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
