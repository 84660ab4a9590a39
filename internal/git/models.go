package git

import (
	"log/slog"
	"strings"
	"time"
)

// Commit is a normalized commit loaded from history. It is never mutated
// after the reader returns it.
type Commit struct {
	SHA     string
	Message string // full message, trimmed
	Author  AuthorInfo
	When    time.Time // committer timestamp
	Changes []FileChange
	Tags    []string // sorted tag names pointing at this commit
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	if idx := strings.IndexByte(c.Message, '\n'); idx != -1 {
		return strings.TrimSpace(c.Message[:idx])
	}
	return c.Message
}

// ShortSHA returns the first n characters of the commit hash.
func (c Commit) ShortSHA(n int) string {
	if n <= 0 || n >= len(c.SHA) {
		return c.SHA
	}
	return c.SHA[:n]
}

// Insertions returns the number of added lines across all recorded files.
func (c Commit) Insertions() int {
	total := 0
	for _, ch := range c.Changes {
		total += ch.LinesAdded
	}
	return total
}

// Deletions returns the number of deleted lines across all recorded files.
func (c Commit) Deletions() int {
	total := 0
	for _, ch := range c.Changes {
		total += ch.LinesDeleted
	}
	return total
}

// Files returns the number of recorded changed files.
func (c Commit) Files() int {
	return len(c.Changes)
}

// Churn returns total lines changed (insertions + deletions).
func (c Commit) Churn() int {
	return c.Insertions() + c.Deletions()
}

// HasTag reports whether any tag in set points at the commit.
func (c Commit) HasTag(set map[string]struct{}) bool {
	for _, t := range c.Tags {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// AuthorInfo represents commit author information.
type AuthorInfo struct {
	Name  string
	Email string
}

// FileChange represents a file change within a commit.
type FileChange struct {
	Path         string
	OldPath      string // For renames
	LinesAdded   int
	LinesDeleted int
	Kind         ChangeKind
}

// Churn returns total lines changed (added + deleted).
func (f FileChange) Churn() int {
	return f.LinesAdded + f.LinesDeleted
}

// ChangeKind represents the type of change.
type ChangeKind int

const (
	ChangeKindAdded ChangeKind = iota
	ChangeKindModified
	ChangeKindDeleted
	ChangeKindRenamed
)

// String returns a string representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeKindAdded:
		return "added"
	case ChangeKindModified:
		return "modified"
	case ChangeKindDeleted:
		return "deleted"
	case ChangeKindRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// ReadOptions configures repository acquisition and the history reader.
type ReadOptions struct {
	Include []string // Glob patterns of changed paths to record
	Exclude []string // Glob patterns of changed paths to skip
	Clone   CloneFunc
	Logger  *slog.Logger
}
