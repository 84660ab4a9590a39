package output

import (
	"time"

	"github.com/masmgr/changelog-gen/internal/git"
	"github.com/masmgr/changelog-gen/internal/scoring"
)

func sampleItems() []scoring.ScoredCommit {
	return []scoring.ScoredCommit{
		{
			Commit: git.Commit{
				SHA:     "abc1234def5678900000000000000000000000aa",
				Message: "feat: add export to CSV\n\nSupports custom delimiters.",
				Author:  git.AuthorInfo{Name: "Alice", Email: "alice@example.com"},
				When:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
				Changes: []git.FileChange{
					{Path: "src/export.go", LinesAdded: 40, LinesDeleted: 2, Kind: git.ChangeKindModified},
					{Path: "src/export_test.go", LinesAdded: 30, Kind: git.ChangeKindAdded},
				},
				Tags: []string{"v1.2.0"},
			},
			Score:     5,
			Rationale: "+2 for 'feat' | +1 for multiple files changed | +1 for significant changes | +1 for changes in important directory",
		},
		{
			Commit: git.Commit{
				SHA:     "fedcba98765432100000000000000000000000bb",
				Message: "chore: bump deps",
				Author:  git.AuthorInfo{Name: "Bob_the_builder", Email: "bob@example.com"},
				When:    time.Date(2024, 4, 28, 9, 30, 0, 0, time.UTC),
				Changes: []git.FileChange{
					{Path: "go.sum", LinesAdded: 2, LinesDeleted: 2, Kind: git.ChangeKindModified},
				},
			},
			Score:     -1,
			Rationale: "-1 for 'chore'",
		},
	}
}

func sampleReport() *PreviewReport {
	since := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	return &PreviewReport{
		Repository:  "/tmp/repo",
		Since:       &since,
		GeneratedAt: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		Candidates:  7,
		Items:       sampleItems(),
	}
}
