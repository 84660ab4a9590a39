package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsolePreviewWriter writes the preview as a colored table.
type ConsolePreviewWriter struct{}

// Write outputs the preview report to w.
func (p *ConsolePreviewWriter) Write(w io.Writer, report *PreviewReport, options OutputOptions) error {
	fmt.Fprintln(w, color.GreenString("Changelog Preview"))
	fmt.Fprintf(w, "Repository: %s\n", report.Repository)
	if label, value := dateRangeLabelAndValue(report.Since, report.Until); label != "" {
		fmt.Fprintf(w, "%s: %s\n", label, value)
	}
	fmt.Fprintf(w, "Selected %d of %d candidate commits\n\n", len(report.Items), report.Candidates)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if options.HideScores {
		fmt.Fprintln(tw, "#\tHash\tAuthor\tDate\tMessage")
	} else {
		fmt.Fprintln(tw, "#\tHash\tAuthor\tDate\tScore\tMessage")
	}

	for i, item := range report.Items {
		hash := item.Commit.ShortSHA(options.shortHashLength())
		date := item.Commit.When.Format(options.dateLayout())
		msg := TruncateMessage(item.Commit.Subject(), options.maxMessageLength())
		if options.HideScores {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, hash, item.Commit.Author.Name, date, msg)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, hash, item.Commit.Author.Name, date,
				scoreColor(item.Score)(FormatScore(item.Score)), msg)
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if !options.HideScores && len(report.Items) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Score explanations:")
		for i, item := range report.Items {
			fmt.Fprintf(w, "  %d. %s: %s\n", i+1, item.Commit.ShortSHA(options.shortHashLength()), item.Rationale)
		}
	}

	fmt.Fprintf(w, "\nTotal commits: %d\n", len(report.Items))

	return nil
}

func scoreColor(score int) func(string, ...interface{}) string {
	switch {
	case score >= 5:
		return color.GreenString
	case score > 0:
		return color.YellowString
	default:
		return color.HiBlackString
	}
}
