package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTruncateMessage(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		maxLen   int
		expected string
	}{
		{name: "Short message", msg: "hello", maxLen: 40, expected: "hello"},
		{name: "Exact length", msg: "1234567890", maxLen: 10, expected: "1234567890"},
		{name: "Over max length", msg: "a very long message here", maxLen: 10, expected: "a very ..."},
		{name: "Multibyte runes", msg: "日本語のコミットメッセージ", maxLen: 6, expected: "日本語..."},
		{name: "Tiny limit", msg: "abcdef", maxLen: 2, expected: "ab"},
		{name: "No limit", msg: "abcdef", maxLen: 0, expected: "abcdef"},
		{name: "Empty message", msg: "", maxLen: 40, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TruncateMessage(tt.msg, tt.maxLen)
			if result != tt.expected {
				t.Errorf("TruncateMessage(%q, %d) = %q, expected %q", tt.msg, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{score: 3, expected: "[+3]"},
		{score: 0, expected: "[+0]"},
		{score: -2, expected: "[-2]"},
	}

	for _, tt := range tests {
		if got := FormatScore(tt.score); got != tt.expected {
			t.Errorf("FormatScore(%d) = %q, expected %q", tt.score, got, tt.expected)
		}
	}
}

func TestCommitLine(t *testing.T) {
	item := sampleItems()[0]

	t.Run("WithScores", func(t *testing.T) {
		got := CommitLine(item, OutputOptions{})
		want := "abc1234 | Alice | 2024-05-01 10:00 | [+5] feat: add export to CSV"
		if got != want {
			t.Fatalf("CommitLine() = %q, want %q", got, want)
		}
	})

	t.Run("HideScores", func(t *testing.T) {
		got := CommitLine(item, OutputOptions{HideScores: true, ShortHashLength: 10, DateLayout: "2006-01-02"})
		want := "abc1234def | Alice | 2024-05-01 | feat: add export to CSV"
		if got != want {
			t.Fatalf("CommitLine() = %q, want %q", got, want)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		got := CommitLine(item, OutputOptions{HideScores: true, MaxMessageLength: 10})
		want := "abc1234 | Alice | 2024-05-01 10:00 | feat: a..."
		if got != want {
			t.Fatalf("CommitLine() = %q, want %q", got, want)
		}
	})
}

func TestDateRangeLabelAndValue(t *testing.T) {
	since := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		since     *time.Time
		until     *time.Time
		wantLabel string
		wantValue string
	}{
		{name: "Both", since: &since, until: &until, wantLabel: "Period", wantValue: "2026-02-01 to 2026-02-10"},
		{name: "SinceOnly", since: &since, wantLabel: "Since", wantValue: "2026-02-01"},
		{name: "UntilOnly", until: &until, wantLabel: "Until", wantValue: "2026-02-10"},
		{name: "Neither"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, value := dateRangeLabelAndValue(tt.since, tt.until)
			if label != tt.wantLabel || value != tt.wantValue {
				t.Fatalf("dateRangeLabelAndValue() = (%q, %q), want (%q, %q)", label, value, tt.wantLabel, tt.wantValue)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	dir := t.TempDir()

	if err := ValidateOutputPath(filepath.Join(dir, "CHANGELOG.md")); err != nil {
		t.Fatalf("ValidateOutputPath() error = %v", err)
	}
	if err := ValidateOutputPath(filepath.Join(dir, "missing", "CHANGELOG.md")); err == nil {
		t.Fatal("expected error for missing directory")
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateOutputPath(filepath.Join(file, "CHANGELOG.md")); err == nil {
		t.Fatal("expected error when parent is a file")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CHANGELOG.md")

	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("# Changelog\n")); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# Changelog\n" {
		t.Fatalf("content = %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the target file, found %d entries", len(entries))
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "CHANGELOG.md")
	if err := WriteFileAtomic(path, []byte("x")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Pipe", input: "a|b", expected: "a\\|b"},
		{name: "Asterisk", input: "a*b", expected: "a\\*b"},
		{name: "Underscore", input: "a_b", expected: "a\\_b"},
		{name: "Backtick", input: "a`b", expected: "a\\`b"},
		{name: "No specials", input: "plain text", expected: "plain text"},
		{name: "Empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := escapeMarkdown(tt.input); result != tt.expected {
				t.Errorf("escapeMarkdown(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
