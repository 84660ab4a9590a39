package git

import "context"

// MockHistoryReader is a test double for HistoryReader.
// It allows tests to provide predefined commit data without needing a real Git repository.
type MockHistoryReader struct {
	Commits []Commit
	Error   error
	Calls   int
}

// NewMockHistoryReader creates a new MockHistoryReader with the given data.
func NewMockHistoryReader(commits []Commit, err error) *MockHistoryReader {
	return &MockHistoryReader{
		Commits: commits,
		Error:   err,
	}
}

// ReadCommits returns up to n predefined commits or the configured error.
func (m *MockHistoryReader) ReadCommits(_ context.Context, n int) ([]Commit, error) {
	m.Calls++
	if m.Error != nil {
		return nil, m.Error
	}
	if n < len(m.Commits) {
		return m.Commits[:n], nil
	}
	return m.Commits, nil
}

// Compile-time interface conformance check.
var _ RepositoryReader = (*MockHistoryReader)(nil)
