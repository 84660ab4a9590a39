package git

import (
	"context"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	apperrors "github.com/masmgr/changelog-gen/internal/errors"
)

// HistoryReader reads commit history from a Git repository.
type HistoryReader struct {
	repo        *git.Repository
	location    string
	opts        ReadOptions
	filterCache map[string]bool
}

// NewHistoryReader creates a history reader over an already opened repository.
// location is only used in error messages.
func NewHistoryReader(repo *git.Repository, location string, opts ReadOptions) *HistoryReader {
	return &HistoryReader{
		repo:        repo,
		location:    location,
		opts:        opts,
		filterCache: make(map[string]bool),
	}
}

// ReadCommits walks HEAD newest first and returns at most n commits.
// A history shorter than n is returned as is.
func (r *HistoryReader) ReadCommits(ctx context.Context, n int) ([]Commit, error) {
	if n <= 0 {
		return nil, apperrors.NewInvalidArgumentError("count", "must be greater than 0")
	}

	ref, err := r.repo.Head()
	if err != nil {
		return nil, apperrors.NewRepositoryAccessError(r.location, "resolve HEAD", "cannot resolve HEAD", err)
	}

	tags, err := r.tagIndex()
	if err != nil {
		return nil, apperrors.NewRepositoryAccessError(r.location, "read tags", "cannot list tags", err)
	}

	cIter, err := r.repo.Log(&git.LogOptions{From: ref.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, apperrors.NewRepositoryAccessError(r.location, "log", "cannot walk history", err)
	}
	defer cIter.Close()

	var results []Commit

	err = cIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(results) >= n {
			return storer.ErrStop
		}

		changes, err := r.commitChanges(ctx, c)
		if err != nil {
			return err
		}

		commitTags := tags[c.Hash]
		sort.Strings(commitTags)

		results = append(results, Commit{
			SHA:     c.Hash.String(),
			Message: strings.TrimSpace(c.Message),
			Author:  AuthorInfo{Name: c.Author.Name, Email: c.Author.Email},
			When:    c.Committer.When,
			Changes: changes,
			Tags:    commitTags,
		})

		return nil
	})

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, apperrors.NewRepositoryAccessError(r.location, "log", "cannot read commit", err)
	}

	r.logDebug("history loaded", "location", r.location, "requested", n, "loaded", len(results))

	return results, nil
}

// tagIndex maps commit hashes to the names of tags pointing at them.
// Annotated tags are peeled to their target commit; tags on non-commit
// objects are ignored.
func (r *HistoryReader) tagIndex() (map[plumbing.Hash][]string, error) {
	refs, err := r.repo.Tags()
	if err != nil {
		return nil, err
	}

	index := make(map[plumbing.Hash][]string)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		if tagObj, err := r.repo.TagObject(target); err == nil {
			c, err := tagObj.Commit()
			if err != nil {
				return nil
			}
			target = c.Hash
		}
		index[target] = append(index[target], ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return index, nil
}

// commitChanges extracts file changes from a commit. The root commit is
// compared to the empty tree and merges to their first parent.
func (r *HistoryReader) commitChanges(ctx context.Context, c *object.Commit) ([]FileChange, error) {
	toTree, err := c.Tree()
	if err != nil {
		return nil, err
	}

	fromTree := &object.Tree{}
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, err
		}
		if fromTree, err = parent.Tree(); err != nil {
			return nil, err
		}
	}

	patch, err := fromTree.PatchContext(ctx, toTree)
	if err != nil {
		return nil, err
	}

	var changes []FileChange

	for _, filePatch := range patch.FilePatches() {
		from, to := filePatch.Files()

		var path, oldPath string
		var kind ChangeKind

		switch {
		case from == nil && to != nil:
			path = to.Path()
			kind = ChangeKindAdded
		case from != nil && to == nil:
			path = from.Path()
			kind = ChangeKindDeleted
		case from != nil && to != nil && from.Path() != to.Path():
			path = to.Path()
			oldPath = from.Path()
			kind = ChangeKindRenamed
		default:
			if to != nil {
				path = to.Path()
			} else if from != nil {
				path = from.Path()
			}
			kind = ChangeKindModified
		}

		if path == "" {
			continue
		}

		ok, err := r.matchesFilters(path)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		var added, deleted int
		for _, chunk := range filePatch.Chunks() {
			switch chunk.Type() {
			case diff.Add:
				added += countLines(chunk.Content())
			case diff.Delete:
				deleted += countLines(chunk.Content())
			}
		}

		changes = append(changes, FileChange{
			Path:         path,
			OldPath:      oldPath,
			LinesAdded:   added,
			LinesDeleted: deleted,
			Kind:         kind,
		})
	}

	return changes, nil
}

// countLines counts lines in a chunk; a trailing newline does not start a new line.
func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

// matchesFilters checks if a path matches the include/exclude filters.
func (r *HistoryReader) matchesFilters(path string) (bool, error) {
	if cached, ok := r.filterCache[path]; ok {
		return cached, nil
	}

	// Normalize path separators
	normalized := strings.ReplaceAll(path, "\\", "/")

	result, err := matchPath(normalized, r.opts.Include, r.opts.Exclude)
	if err != nil {
		return false, err
	}

	r.filterCache[path] = result
	return result, nil
}

func matchPath(path string, include, exclude []string) (bool, error) {
	for _, pattern := range exclude {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, err
		}
		if matched {
			return false, nil
		}
	}

	if len(include) == 0 {
		return true, nil
	}

	for _, pattern := range include {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}

	return false, nil
}

func (r *HistoryReader) logDebug(msg string, args ...any) {
	if r.opts.Logger != nil {
		r.opts.Logger.Debug(msg, args...)
	}
}
