package changelog

import (
	"time"

	"github.com/masmgr/changelog-gen/internal/git"
)

func testCommits() []git.Commit {
	return []git.Commit{
		{
			SHA:     "1111111aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			Message: "feat: add CSV export",
			Author:  git.AuthorInfo{Name: "Alice"},
			When:    time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC),
			Tags:    []string{"v1.10.0"},
		},
		{
			SHA:     "2222222bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
			Message: "fix: crash on empty repository\n\nCloses #12",
			Author:  git.AuthorInfo{Name: "Bob"},
			When:    time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
			Tags:    []string{"v1.9.0", "release-candidate"},
		},
		{
			SHA:     "3333333ccccccccccccccccccccccccccccccccc",
			Message: "docs: tweak README wording",
			Author:  git.AuthorInfo{Name: "Carol"},
			When:    time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}
