package git

import (
	"context"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"

	apperrors "github.com/masmgr/changelog-gen/internal/errors"
)

// CloneFunc clones url into dir and returns the opened repository.
type CloneFunc func(ctx context.Context, url, dir string) (*git.Repository, error)

// Source is an acquired repository. Remote repositories live in a
// temporary directory that Close removes.
type Source struct {
	Location string
	Remote   bool
	Reader   *HistoryReader

	tempDir   string
	closeOnce sync.Once
	closeErr  error
}

var scpLikeURL = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9._-]+:`)

var remotePrefixes = []string{"https://", "http://", "ssh://", "git://", "file://"}

// IsRemote reports whether location names a remote repository rather than a
// local path.
func IsRemote(location string) bool {
	for _, p := range remotePrefixes {
		if strings.HasPrefix(location, p) {
			return true
		}
	}
	return scpLikeURL.MatchString(location)
}

// Open acquires the repository at location. Remote locations are cloned into
// a temporary directory; the caller must Close the returned Source.
func Open(ctx context.Context, location string, opts ReadOptions) (*Source, error) {
	if strings.TrimSpace(location) == "" {
		return nil, apperrors.NewInvalidArgumentError("repository", "must not be empty")
	}

	if IsRemote(location) {
		return openRemote(ctx, location, opts)
	}
	return openLocal(location, opts)
}

func openLocal(location string, opts ReadOptions) (*Source, error) {
	if _, err := os.Stat(location); err != nil {
		return nil, apperrors.NewRepositoryAccessError(location, "open", "path does not exist", err)
	}

	repo, err := git.PlainOpenWithOptions(location, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, apperrors.NewRepositoryAccessError(location, "open", "not a git repository", err)
	}

	return &Source{
		Location: location,
		Reader:   NewHistoryReader(repo, location, opts),
	}, nil
}

func openRemote(ctx context.Context, location string, opts ReadOptions) (*Source, error) {
	dir, err := os.MkdirTemp("", "changelog-gen-*")
	if err != nil {
		return nil, apperrors.NewRepositoryAccessError(location, "clone", "cannot create temporary directory", err)
	}

	clone := opts.Clone
	if clone == nil {
		clone = bareClone
	}

	if opts.Logger != nil {
		opts.Logger.Debug("cloning repository", "url", location, "dir", dir)
	}

	repo, err := clone(ctx, location, dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, apperrors.NewRepositoryAccessError(location, "clone", "clone failed", err)
	}

	return &Source{
		Location: location,
		Remote:   true,
		Reader:   NewHistoryReader(repo, location, opts),
		tempDir:  dir,
	}, nil
}

func bareClone(ctx context.Context, url, dir string) (*git.Repository, error) {
	return git.PlainCloneContext(ctx, dir, true, &git.CloneOptions{URL: url})
}

// TempDir returns the clone directory of a remote source, or "" for local ones.
func (s *Source) TempDir() string {
	return s.tempDir
}

// Close releases the temporary clone, if any. It is safe to call more than once.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		if s.tempDir != "" {
			s.closeErr = os.RemoveAll(s.tempDir)
		}
	})
	return s.closeErr
}
