package changelog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/masmgr/changelog-gen/config"
	"github.com/masmgr/changelog-gen/internal/git"
)

// OtherCategory collects commits no category pattern matched.
const OtherCategory = "Other"

// Classifier assigns commits to changelog sections by matching their subject
// against per-section regex patterns.
type Classifier struct {
	order    []string
	patterns map[string][]*regexp.Regexp
}

// Group is a changelog section and the commits assigned to it.
type Group struct {
	Category string
	Commits  []git.Commit
}

// NewClassifier compiles the patterns of cfg. Patterns are case-insensitive.
// Sections listed in cfg.Default are tried first in that order, then any
// remaining sections alphabetically.
func NewClassifier(cfg config.CategoryConfig) (*Classifier, error) {
	c := &Classifier{patterns: make(map[string][]*regexp.Regexp, len(cfg.Patterns))}

	for name, patterns := range cfg.Patterns {
		compiled := make([]*regexp.Regexp, 0, len(patterns))
		for _, p := range patterns {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if !strings.HasPrefix(p, "(?i)") {
				p = "(?i)" + p
			}
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, err
			}
			compiled = append(compiled, re)
		}
		c.patterns[name] = compiled
	}

	seen := make(map[string]struct{}, len(cfg.Patterns))
	for _, name := range cfg.Default {
		if _, ok := c.patterns[name]; ok {
			c.order = append(c.order, name)
			seen[name] = struct{}{}
		}
	}
	var rest []string
	for name := range c.patterns {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	c.order = append(c.order, rest...)

	return c, nil
}

// Classify returns the first section whose patterns match the subject of
// message, or OtherCategory.
func (c *Classifier) Classify(message string) string {
	subject := git.Commit{Message: message}.Subject()
	for _, name := range c.order {
		for _, re := range c.patterns[name] {
			if re.MatchString(subject) {
				return name
			}
		}
	}
	return OtherCategory
}

// Group buckets commits by section, in section order, dropping empty
// sections. Commit order within a section is preserved.
func (c *Classifier) Group(commits []git.Commit) []Group {
	buckets := make(map[string][]git.Commit)
	for _, commit := range commits {
		name := c.Classify(commit.Message)
		buckets[name] = append(buckets[name], commit)
	}

	groups := make([]Group, 0, len(buckets))
	for _, name := range append(append([]string{}, c.order...), OtherCategory) {
		if items, ok := buckets[name]; ok {
			groups = append(groups, Group{Category: name, Commits: items})
		}
	}
	return groups
}
