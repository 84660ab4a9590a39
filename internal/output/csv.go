package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// CSVPreviewWriter writes the preview as CSV.
type CSVPreviewWriter struct{}

// Write outputs the preview report as CSV with one row per selected commit.
func (p *CSVPreviewWriter) Write(w io.Writer, report *PreviewReport, options OutputOptions) error {
	writer := csv.NewWriter(w)

	headers := []string{"SHA", "When", "Author", "Message", "Tags", "Files", "Insertions", "Deletions"}
	if !options.HideScores {
		headers = append(headers, "Score", "Rationale")
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, item := range report.Items {
		row := []string{
			item.Commit.SHA,
			item.Commit.When.Format(reportDateTimeLayout),
			item.Commit.Author.Name,
			item.Commit.Subject(),
			strings.Join(item.Commit.Tags, ";"),
			strconv.Itoa(item.Commit.Files()),
			strconv.Itoa(item.Commit.Insertions()),
			strconv.Itoa(item.Commit.Deletions()),
		}
		if !options.HideScores {
			row = append(row, strconv.Itoa(item.Score), item.Rationale)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
