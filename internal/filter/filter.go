// Package filter narrows loaded history down to the candidate commits.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/masmgr/changelog-gen/internal/git"
)

// Criteria is the filter configuration built once from CLI input.
// Zero-valued fields disable their predicate.
type Criteria struct {
	From    *time.Time
	To      *time.Time
	Author  string   // case-sensitive substring of the author name
	Tags    []string // keep commits carrying at least one of these
	Exclude []string // drop commits whose message contains any of these
}

type predicate func(git.Commit) bool

// predicates returns the enabled predicates in evaluation order:
// date range, author, tags, exclude patterns.
func (c Criteria) predicates() []predicate {
	var preds []predicate

	if c.From != nil || c.To != nil {
		from, to := c.From, c.To
		preds = append(preds, func(commit git.Commit) bool {
			if from != nil && commit.When.Before(*from) {
				return false
			}
			if to != nil && commit.When.After(*to) {
				return false
			}
			return true
		})
	}

	if c.Author != "" {
		author := c.Author
		preds = append(preds, func(commit git.Commit) bool {
			return strings.Contains(commit.Author.Name, author)
		})
	}

	if len(c.Tags) > 0 {
		set := tagSet(c.Tags)
		preds = append(preds, func(commit git.Commit) bool {
			return commit.HasTag(set)
		})
	}

	if len(c.Exclude) > 0 {
		patterns := c.Exclude
		preds = append(preds, func(commit git.Commit) bool {
			for _, p := range patterns {
				if p != "" && strings.Contains(commit.Message, p) {
					return false
				}
			}
			return true
		})
	}

	return preds
}

// Apply returns the commits accepted by every enabled predicate, in their
// original relative order. An empty result is valid.
func Apply(commits []git.Commit, c Criteria) []git.Commit {
	preds := c.predicates()
	out := make([]git.Commit, 0, len(commits))

next:
	for _, commit := range commits {
		for _, keep := range preds {
			if !keep(commit) {
				continue next
			}
		}
		out = append(out, commit)
	}

	return out
}

// MissingTags returns the configured tags not attached to any of commits, sorted.
func MissingTags(commits []git.Commit, c Criteria) []string {
	if len(c.Tags) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	for _, commit := range commits {
		for _, t := range commit.Tags {
			seen[t] = struct{}{}
		}
	}

	var missing []string
	for t := range tagSet(c.Tags) {
		if _, ok := seen[t]; !ok {
			missing = append(missing, t)
		}
	}
	sort.Strings(missing)
	return missing
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}
