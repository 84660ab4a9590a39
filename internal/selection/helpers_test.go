package selection

import (
	"fmt"
	"time"

	"github.com/masmgr/changelog-gen/internal/git"
	"github.com/masmgr/changelog-gen/internal/scoring"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// history returns n scored commits newest first, with the given scores.
func history(scores ...int) []scoring.ScoredCommit {
	out := make([]scoring.ScoredCommit, len(scores))
	for i, s := range scores {
		out[i] = scoring.ScoredCommit{
			Commit: git.Commit{
				SHA:     fmt.Sprintf("%040d", i+1),
				Message: fmt.Sprintf("commit %d", i+1),
				Author:  git.AuthorInfo{Name: "Alice"},
				When:    baseTime.Add(-time.Duration(i) * time.Hour),
			},
			Score:     s,
			Rationale: fmt.Sprintf("score %d", s),
		}
	}
	return out
}

func shas(items []scoring.ScoredCommit) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Commit.SHA
	}
	return out
}
