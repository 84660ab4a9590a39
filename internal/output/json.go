package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// JSONPreviewWriter writes the preview as JSON.
type JSONPreviewWriter struct{}

// JSONPreviewReport is the JSON output structure for a preview.
type JSONPreviewReport struct {
	Repository    string           `json:"repository"`
	Since         *string          `json:"since,omitempty"`
	Until         *string          `json:"until,omitempty"`
	GeneratedAt   string           `json:"generatedAt"`
	Candidates    int              `json:"candidates"`
	TotalSelected int              `json:"totalSelected"`
	Items         []JSONCommitItem `json:"items"`
}

// JSONCommitItem is the JSON output structure for a single selected commit.
type JSONCommitItem struct {
	SHA        string   `json:"sha"`
	When       string   `json:"when"`
	Author     string   `json:"author"`
	Message    string   `json:"message"`
	Tags       []string `json:"tags,omitempty"`
	Files      int      `json:"files"`
	Insertions int      `json:"insertions"`
	Deletions  int      `json:"deletions"`
	Score      *int     `json:"score,omitempty"`
	Rationale  string   `json:"rationale,omitempty"`
}

// Write outputs the preview report as indented JSON.
func (p *JSONPreviewWriter) Write(w io.Writer, report *PreviewReport, options OutputOptions) error {
	items := make([]JSONCommitItem, len(report.Items))
	for i, item := range report.Items {
		jsonItem := JSONCommitItem{
			SHA:        item.Commit.SHA,
			When:       item.Commit.When.Format(time.RFC3339),
			Author:     item.Commit.Author.Name,
			Message:    item.Commit.Message,
			Tags:       item.Commit.Tags,
			Files:      item.Commit.Files(),
			Insertions: item.Commit.Insertions(),
			Deletions:  item.Commit.Deletions(),
		}
		if !options.HideScores {
			score := item.Score
			jsonItem.Score = &score
			jsonItem.Rationale = item.Rationale
		}
		items[i] = jsonItem
	}

	return writeJSON(w, JSONPreviewReport{
		Repository:    report.Repository,
		Since:         formatDate(report.Since),
		Until:         formatDate(report.Until),
		GeneratedAt:   report.GeneratedAt.Format(time.RFC3339),
		Candidates:    report.Candidates,
		TotalSelected: len(items),
		Items:         items,
	})
}

func writeJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
