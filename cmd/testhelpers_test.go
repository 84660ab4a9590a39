package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/masmgr/changelog-gen/config"
	"github.com/masmgr/changelog-gen/internal/changelog"
	"github.com/masmgr/changelog-gen/internal/git"
)

// fixedNow is far enough after every fixture commit that no recency bonus applies.
var fixedNow = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

type fixtureCommit struct {
	message string
	author  string
	when    time.Time
	file    string
	content string
}

// newFixtureRepo creates a repository with commits applied oldest first.
func newFixtureRepo(t *testing.T, commits []fixtureCommit) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}

	for i, c := range commits {
		file := c.file
		if file == "" {
			file = "file" + string(rune('a'+i)) + ".txt"
		}
		content := c.content
		if content == "" {
			content = c.message + "\n"
		}
		full := filepath.Join(dir, file)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := wt.Add(file); err != nil {
			t.Fatalf("Add: %v", err)
		}

		author := c.author
		if author == "" {
			author = "Alice"
		}
		sig := &object.Signature{Name: author, Email: strings.ToLower(author) + "@example.com", When: c.when}
		if _, err := wt.Commit(c.message, &gogit.CommitOptions{Author: sig, Committer: sig}); err != nil {
			t.Fatalf("Commit: %v", err)
		}
	}
	return dir
}

// dailyCommits returns commits with the given messages, one day apart,
// starting 2024-01-10.
func dailyCommits(messages ...string) []fixtureCommit {
	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	out := make([]fixtureCommit, len(messages))
	for i, m := range messages {
		out[i] = fixtureCommit{message: m, when: base.AddDate(0, 0, i)}
	}
	return out
}

// recordingSummarizer stands in for the text-generation service.
type recordingSummarizer struct {
	calls      [][]git.Commit
	categories [][]string
	text       string
	err        error
}

func (r *recordingSummarizer) Summarize(ctx context.Context, commits []git.Commit, categories []string) (string, error) {
	r.calls = append(r.calls, commits)
	r.categories = append(r.categories, categories)
	if r.err != nil {
		return "", r.err
	}
	return r.text, nil
}

type harness struct {
	summarizer   *recordingSummarizer
	factoryCalls int
	stdin        string
	stdout       bytes.Buffer
	stderr       bytes.Buffer
	clone        git.CloneFunc
}

func newHarness() *harness {
	return &harness{summarizer: &recordingSummarizer{text: "- Something useful"}}
}

func (h *harness) run(t *testing.T, args ...string) int {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	deps := Deps{
		Stdin:  strings.NewReader(h.stdin),
		Stdout: &h.stdout,
		Stderr: &h.stderr,
		NewSummarizer: func(cfg *config.Config, logger *slog.Logger) (changelog.Summarizer, error) {
			h.factoryCalls++
			return h.summarizer, nil
		},
		Clone: h.clone,
		Now:   func() time.Time { return fixedNow },
	}
	return RunWith(deps, append([]string{"changelog-gen"}, args...))
}

func subjects(commits []git.Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.Subject()
	}
	return out
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
