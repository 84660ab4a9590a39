package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/masmgr/changelog-gen/internal/scoring"
)

const (
	reportDateLayout     = "2006-01-02"
	reportDateTimeLayout = "2006-01-02T15:04:05"
	defaultDateLayout    = "2006-01-02 15:04"
)

func dateRangeLabelAndValue(since, until *time.Time) (string, string) {
	switch {
	case since != nil && until != nil:
		return "Period", since.Format(reportDateLayout) + " to " + until.Format(reportDateLayout)
	case since != nil:
		return "Since", since.Format(reportDateLayout)
	case until != nil:
		return "Until", until.Format(reportDateLayout)
	default:
		return "", ""
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(reportDateLayout)
	return &formatted
}

// TruncateMessage shortens msg to at most maxLen runes, ending in "...".
func TruncateMessage(msg string, maxLen int) string {
	runes := []rune(msg)
	if maxLen <= 0 || len(runes) <= maxLen {
		return msg
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// FormatScore renders a score with an explicit sign, e.g. "[+3]" or "[-1]".
func FormatScore(score int) string {
	return fmt.Sprintf("[%+d]", score)
}

// CommitLine formats a commit for previews and the interactive checklist:
// "abc1234 | Alice | 2024-05-01 10:00 | [+3] feat: add export".
func CommitLine(item scoring.ScoredCommit, options OutputOptions) string {
	msg := TruncateMessage(item.Commit.Subject(), options.maxMessageLength())
	if !options.HideScores {
		msg = FormatScore(item.Score) + " " + msg
	}
	return strings.Join([]string{
		item.Commit.ShortSHA(options.shortHashLength()),
		item.Commit.Author.Name,
		item.Commit.When.Format(options.dateLayout()),
		msg,
	}, " | ")
}

func (o OutputOptions) shortHashLength() int {
	if o.ShortHashLength <= 0 {
		return 7
	}
	return o.ShortHashLength
}

func (o OutputOptions) maxMessageLength() int {
	if o.MaxMessageLength <= 0 {
		return 60
	}
	return o.MaxMessageLength
}

func (o OutputOptions) dateLayout() string {
	if o.DateLayout == "" {
		return defaultDateLayout
	}
	return o.DateLayout
}

// ValidateOutputPath checks that the directory of path exists, so a long
// render is not wasted on an unwritable destination.
func ValidateOutputPath(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory %s does not exist", dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", dir)
	}
	return nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a partial document.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
