package changelog

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/masmgr/changelog-gen/internal/git"
)

const defaultTitle = "# Changelog"

// Finalize trims generated text and guarantees it starts with a markdown
// header. When a header has to be added and the commits carry semver tags,
// the newest version is named in it.
func Finalize(text string, commits []git.Commit) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "#") {
		title := defaultTitle
		if v := LatestVersion(commits); v != "" {
			title += " (" + v + ")"
		}
		if text == "" {
			text = title
		} else {
			text = title + "\n\n" + text
		}
	}
	return text + "\n"
}

// LatestVersion returns the highest semver tag among commits, as written in
// the tag, or "" when none parses. Pre-releases rank below their release.
func LatestVersion(commits []git.Commit) string {
	var (
		best    *semver.Version
		bestTag string
	)
	for _, c := range commits {
		for _, tag := range c.Tags {
			v, err := semver.NewVersion(tag)
			if err != nil {
				continue
			}
			if best == nil || v.GreaterThan(best) {
				best = v
				bestTag = tag
			}
		}
	}
	return bestTag
}
