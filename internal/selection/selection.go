// Package selection turns scored candidates into the ordered set of commits
// that goes into the changelog.
package selection

import (
	"github.com/masmgr/changelog-gen/internal/git"
	"github.com/masmgr/changelog-gen/internal/scoring"
)

// Outcome records how a Selection was produced.
type Outcome int

const (
	OutcomeAutomatic Outcome = iota
	OutcomeConfirmed
	OutcomeCancelled
)

// String returns a string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeAutomatic:
		return "automatic"
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Selection is an ordered, duplicate-free subset of the candidates.
// Item order is rendering order.
type Selection struct {
	Items   []scoring.ScoredCommit
	Outcome Outcome
}

// Len returns the number of selected commits.
func (s Selection) Len() int {
	return len(s.Items)
}

// Empty reports whether nothing was selected.
func (s Selection) Empty() bool {
	return len(s.Items) == 0
}

// Commits returns the selected commits in selection order.
func (s Selection) Commits() []git.Commit {
	out := make([]git.Commit, len(s.Items))
	for i, item := range s.Items {
		out[i] = item.Commit
	}
	return out
}

// Automatic takes the first min(k, len(ranked)) items of a ranked list.
func Automatic(ranked []scoring.ScoredCommit, k int) Selection {
	if k < 0 {
		k = 0
	}
	if k > len(ranked) {
		k = len(ranked)
	}

	items := make([]scoring.ScoredCommit, k)
	copy(items, ranked[:k])

	return Selection{Items: items, Outcome: OutcomeAutomatic}
}

// Chronological re-emits sel in the order its commits appear in history.
// Items missing from history keep their relative order at the end.
func Chronological(sel Selection, history []scoring.ScoredCommit) Selection {
	position := make(map[string]int, len(history))
	for i, item := range history {
		if _, ok := position[item.Commit.SHA]; !ok {
			position[item.Commit.SHA] = i
		}
	}

	placed := make([]*scoring.ScoredCommit, len(history))
	var rest []scoring.ScoredCommit
	for i := range sel.Items {
		if p, ok := position[sel.Items[i].Commit.SHA]; ok && placed[p] == nil {
			placed[p] = &sel.Items[i]
			continue
		}
		rest = append(rest, sel.Items[i])
	}

	items := make([]scoring.ScoredCommit, 0, len(sel.Items))
	for _, item := range placed {
		if item != nil {
			items = append(items, *item)
		}
	}
	items = append(items, rest...)

	return Selection{Items: items, Outcome: sel.Outcome}
}
