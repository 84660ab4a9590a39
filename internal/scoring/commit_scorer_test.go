package scoring

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/masmgr/changelog-gen/config"
	"github.com/masmgr/changelog-gen/internal/git"
)

var refTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestScorer() *CommitScorer {
	return NewCommitScorer(config.DefaultConfig().Scoring, refTime)
}

func files(n, linesEach int, dir string) []git.FileChange {
	changes := make([]git.FileChange, n)
	for i := range changes {
		changes[i] = git.FileChange{
			Path:       fmt.Sprintf("%s/file%d.go", dir, i),
			LinesAdded: linesEach,
			Kind:       git.ChangeKindModified,
		}
	}
	return changes
}

func TestCommitScorer_Score(t *testing.T) {
	old := refTime.AddDate(0, -1, 0)
	longBody := "\n\n" + strings.Repeat("Explains the change in detail. ", 4)

	tests := []struct {
		name      string
		commit    git.Commit
		score     int
		rationale string
	}{
		{
			name:      "single keyword",
			commit:    git.Commit{Message: "fix: crash on startup", When: old},
			score:     2,
			rationale: "+2 for 'fix'",
		},
		{
			name:      "trivial keyword",
			commit:    git.Commit{Message: "chore: bump deps", When: old},
			score:     -1,
			rationale: "-1 for 'chore'",
		},
		{
			name:      "nothing matches",
			commit:    git.Commit{Message: "docs: readme tweaks", When: old},
			score:     0,
			rationale: "No significant factors",
		},
		{
			name: "every factor",
			commit: git.Commit{
				Message: "feat: add OAuth login" + longBody,
				When:    refTime.Add(-24 * time.Hour),
				Changes: files(3, 20, "src/auth"),
			},
			score: 10,
			rationale: "+3 for 'feat' | +2 for 'add' | +1 for detailed message | +1 for multiple files changed" +
				" | +1 for significant changes | +1 for changes in important directory | +1 for recent change",
		},
		{
			name:      "keyword counted once",
			commit:    git.Commit{Message: "fix fix fix", When: old},
			score:     2,
			rationale: "+2 for 'fix'",
		},
		{
			name:      "longest prefix on first word",
			commit:    git.Commit{Message: "features: dark mode", When: old},
			score:     3,
			rationale: "+3 for 'feature'",
		},
		{
			name:      "conventional scope",
			commit:    git.Commit{Message: "feat(api): pagination", When: old},
			score:     3,
			rationale: "+3 for 'feat'",
		},
		{
			name:      "case-insensitive",
			commit:    git.Commit{Message: "FIX: Security hole", When: old},
			score:     6,
			rationale: "+2 for 'fix' | +4 for 'security'",
		},
		{
			name:      "body keywords ignored",
			commit:    git.Commit{Message: "docs: notes\n\nfix the breaking thing", When: old},
			score:     0,
			rationale: "No significant factors",
		},
		{
			name:      "later words need exact match",
			commit:    git.Commit{Message: "docs: fixes and features", When: old},
			score:     0,
			rationale: "No significant factors",
		},
		{
			name: "clamped high",
			commit: git.Commit{
				Message: "breaking: security fix vulnerability feature",
				When:    old,
				Changes: files(6, 1, "docs"),
			},
			score: 10,
			rationale: "+4 for 'breaking' | +4 for 'security' | +2 for 'fix' | +4 for 'vulnerability'" +
				" | +3 for 'feature' | +2 for many files changed",
		},
		{
			name:   "clamped low",
			commit: git.Commit{Message: "wip temp chore typo format style merge", When: old},
			score:  -5,
			rationale: "-1 for 'wip' | -1 for 'temp' | -1 for 'chore' | -1 for 'typo'" +
				" | -1 for 'format' | -1 for 'style' | -1 for 'merge'",
		},
	}

	scorer := newTestScorer()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.commit)
			if got.Score != tt.score {
				t.Errorf("Score = %d, expected %d (rationale %q)", got.Score, tt.score, got.Rationale)
			}
			if got.Rationale != tt.rationale {
				t.Errorf("Rationale = %q, expected %q", got.Rationale, tt.rationale)
			}
		})
	}
}

func TestCommitScorer_Score_RawKeepsUnclampedSum(t *testing.T) {
	got := newTestScorer().Score(git.Commit{
		Message: "wip temp chore typo format style merge",
		When:    refTime.AddDate(-1, 0, 0),
	})
	if got.Factors.Raw != -7 {
		t.Errorf("Raw = %d, expected -7", got.Factors.Raw)
	}
	if len(got.Factors.Keywords) != 7 {
		t.Errorf("Keywords = %d, expected 7", len(got.Factors.Keywords))
	}
}

func TestCommitScorer_SizeSteps(t *testing.T) {
	tests := []struct {
		churn    int
		expected int
	}{
		{churn: 0, expected: 0},
		{churn: 50, expected: 0},
		{churn: 51, expected: 1},
		{churn: 100, expected: 1},
		{churn: 101, expected: 2},
		{churn: 100000, expected: 2},
	}

	scorer := newTestScorer()

	for _, tt := range tests {
		t.Run(fmt.Sprintf("churn=%d", tt.churn), func(t *testing.T) {
			c := git.Commit{
				Message: "docs",
				When:    refTime.AddDate(-1, 0, 0),
				Changes: []git.FileChange{{Path: "docs/x.md", LinesAdded: tt.churn}},
			}
			if got := scorer.Score(c).Factors.Size; got != tt.expected {
				t.Errorf("Size = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestCommitScorer_FileSteps(t *testing.T) {
	tests := []struct {
		files    int
		expected int
	}{
		{files: 1, expected: 0},
		{files: 2, expected: 0},
		{files: 3, expected: 1},
		{files: 5, expected: 1},
		{files: 6, expected: 2},
	}

	scorer := newTestScorer()

	for _, tt := range tests {
		t.Run(fmt.Sprintf("files=%d", tt.files), func(t *testing.T) {
			c := git.Commit{Message: "docs", When: refTime.AddDate(-1, 0, 0), Changes: files(tt.files, 0, "docs")}
			if got := scorer.Score(c).Factors.Files; got != tt.expected {
				t.Errorf("Files = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestCommitScorer_Recency(t *testing.T) {
	tests := []struct {
		name     string
		when     time.Time
		expected int
	}{
		{name: "just now", when: refTime, expected: 1},
		{name: "exactly seven days", when: refTime.Add(-7 * 24 * time.Hour), expected: 1},
		{name: "eight days", when: refTime.Add(-8 * 24 * time.Hour), expected: 0},
		{name: "future clock skew", when: refTime.Add(time.Hour), expected: 1},
	}

	scorer := newTestScorer()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scorer.Score(git.Commit{Message: "docs", When: tt.when}).Factors.Recency; got != tt.expected {
				t.Errorf("Recency = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestCommitScorer_ImportantPaths(t *testing.T) {
	scorer := newTestScorer()
	old := refTime.AddDate(-1, 0, 0)

	inside := git.Commit{Message: "docs", When: old, Changes: []git.FileChange{{Path: "api/v1/handler.go"}}}
	outside := git.Commit{Message: "docs", When: old, Changes: []git.FileChange{{Path: "docs/api/handler.go"}}}

	if got := scorer.Score(inside).Factors.Paths; got != 1 {
		t.Errorf("Paths(api/...) = %d, expected 1", got)
	}
	if got := scorer.Score(outside).Factors.Paths; got != 0 {
		t.Errorf("Paths(docs/api/...) = %d, expected 0", got)
	}
}

func TestCommitScorer_ScoreAll_Empty(t *testing.T) {
	if result := newTestScorer().ScoreAll(nil); result != nil {
		t.Errorf("ScoreAll(nil) = %v, expected nil", result)
	}
}

func TestCommitScorer_ScoreAll_PreservesOrder(t *testing.T) {
	commits := []git.Commit{
		{SHA: "a", Message: "chore: x", When: refTime},
		{SHA: "b", Message: "feat: y", When: refTime},
		{SHA: "c", Message: "fix: z", When: refTime},
	}

	items := newTestScorer().ScoreAll(commits)
	for i, item := range items {
		if item.Commit.SHA != commits[i].SHA {
			t.Errorf("items[%d] = %s, expected %s", i, item.Commit.SHA, commits[i].SHA)
		}
	}
}

func TestRank_Ordering(t *testing.T) {
	items := []ScoredCommit{
		{Commit: git.Commit{SHA: "low", When: refTime}, Score: 1},
		{Commit: git.Commit{SHA: "tie-old", When: refTime.Add(-2 * time.Hour)}, Score: 5},
		{Commit: git.Commit{SHA: "high", When: refTime.Add(-5 * time.Hour)}, Score: 8},
		{Commit: git.Commit{SHA: "tie-new", When: refTime.Add(-1 * time.Hour)}, Score: 5},
		{Commit: git.Commit{SHA: "tie-same-1", When: refTime.Add(-3 * time.Hour)}, Score: 2},
		{Commit: git.Commit{SHA: "tie-same-2", When: refTime.Add(-3 * time.Hour)}, Score: 2},
	}

	ranked := Rank(items)

	expected := []string{"high", "tie-new", "tie-old", "tie-same-1", "tie-same-2", "low"}
	for i, sha := range expected {
		if ranked[i].Commit.SHA != sha {
			t.Errorf("ranked[%d] = %s, expected %s", i, ranked[i].Commit.SHA, sha)
		}
	}

	if items[0].Commit.SHA != "low" {
		t.Error("Rank must not reorder its input")
	}
}
