package scoring

import (
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/masmgr/changelog-gen/config"
	"github.com/masmgr/changelog-gen/internal/git"
)

// ScoredCommit represents a commit with its changelog-worthiness score.
type ScoredCommit struct {
	Commit    git.Commit
	Score     int
	Rationale string
	Factors   Factors
}

// Factors shows the contribution of each factor to the total score.
type Factors struct {
	Keywords []KeywordHit
	Detail   int
	Files    int
	Size     int
	Paths    int
	Recency  int
	Raw      int // sum before clamping
}

// KeywordHit is a matched keyword and its weight.
type KeywordHit struct {
	Keyword string
	Weight  int
}

// CommitScorer calculates changelog-worthiness scores for commits.
// The reference time is fixed at construction, so scoring is deterministic.
type CommitScorer struct {
	options config.ScoringConfig
	now     time.Time
}

// NewCommitScorer creates a new commit scorer with the given options and reference time.
func NewCommitScorer(options config.ScoringConfig, now time.Time) *CommitScorer {
	return &CommitScorer{options: options, now: now}
}

// Score computes the score and rationale of a single commit.
func (s *CommitScorer) Score(c git.Commit) ScoredCommit {
	var f Factors
	var reasons []string

	for _, hit := range matchKeywords(c.Subject(), s.options.Keywords, s.options.TrivialKeywords) {
		f.Keywords = append(f.Keywords, hit)
		f.Raw += hit.Weight
		reasons = append(reasons, signed(hit.Weight)+" for '"+hit.Keyword+"'")
	}

	th := s.options.Thresholds

	if th.DetailedMessage > 0 && len(c.Message) > th.DetailedMessage {
		f.Detail = 1
		reasons = append(reasons, "+1 for detailed message")
	}

	switch files := c.Files(); {
	case files > th.ManyFiles:
		f.Files = 2
		reasons = append(reasons, "+2 for many files changed")
	case files > th.MultipleFiles:
		f.Files = 1
		reasons = append(reasons, "+1 for multiple files changed")
	}

	switch churn := c.Churn(); {
	case churn > th.LargeChurn:
		f.Size = 2
		reasons = append(reasons, "+2 for large changes")
	case churn > th.SignificantChurn:
		f.Size = 1
		reasons = append(reasons, "+1 for significant changes")
	}

	if s.touchesImportantPath(c) {
		f.Paths = 1
		reasons = append(reasons, "+1 for changes in important directory")
	}

	if s.isRecent(c) {
		f.Recency = 1
		reasons = append(reasons, "+1 for recent change")
	}

	f.Raw += f.Detail + f.Files + f.Size + f.Paths + f.Recency

	rationale := "No significant factors"
	if len(reasons) > 0 {
		rationale = strings.Join(reasons, " | ")
	}

	return ScoredCommit{
		Commit:    c,
		Score:     clampScore(f.Raw, s.options.MinScore, s.options.MaxScore),
		Rationale: rationale,
		Factors:   f,
	}
}

// ScoreAll scores commits, preserving input order.
func (s *CommitScorer) ScoreAll(commits []git.Commit) []ScoredCommit {
	if len(commits) == 0 {
		return nil
	}

	items := make([]ScoredCommit, 0, len(commits))
	for _, c := range commits {
		items = append(items, s.Score(c))
	}
	return items
}

// Rank returns a copy of items sorted by score descending. Ties are broken by
// commit time (newest first), then by input order.
func Rank(items []ScoredCommit) []ScoredCommit {
	ranked := make([]ScoredCommit, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Commit.When.After(ranked[j].Commit.When)
	})

	return ranked
}

func (s *CommitScorer) touchesImportantPath(c git.Commit) bool {
	for _, ch := range c.Changes {
		for _, pattern := range s.options.ImportantPaths {
			if matched, _ := doublestar.Match(pattern, ch.Path); matched {
				return true
			}
		}
	}
	return false
}

func (s *CommitScorer) isRecent(c git.Commit) bool {
	if s.options.RecentWindowDays <= 0 {
		return false
	}
	window := time.Duration(s.options.RecentWindowDays) * 24 * time.Hour
	return s.now.Sub(c.When) <= window
}
