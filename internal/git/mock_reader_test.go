package git

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMockHistoryReader_ReadCommits(t *testing.T) {
	commits := []Commit{
		{SHA: "ccc333", When: time.Now(), Author: AuthorInfo{Name: "Test"}, Message: "third"},
		{SHA: "bbb222", When: time.Now(), Author: AuthorInfo{Name: "Test"}, Message: "second"},
		{
			SHA:     "aaa111",
			When:    time.Now(),
			Author:  AuthorInfo{Name: "Test", Email: "test@example.com"},
			Message: "first",
			Changes: []FileChange{
				{Path: "file1.go", Kind: ChangeKindModified, LinesAdded: 10, LinesDeleted: 5},
			},
		},
	}

	t.Run("returns all commits when n exceeds history", func(t *testing.T) {
		reader := NewMockHistoryReader(commits, nil)

		got, err := reader.ReadCommits(context.Background(), 10)
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if len(got) != len(commits) {
			t.Errorf("expected %d commits, got %d", len(commits), len(got))
		}
	})

	t.Run("truncates to n", func(t *testing.T) {
		reader := NewMockHistoryReader(commits, nil)

		got, _ := reader.ReadCommits(context.Background(), 2)
		if len(got) != 2 || got[0].SHA != "ccc333" {
			t.Errorf("expected newest two commits, got %+v", got)
		}
		if reader.Calls != 1 {
			t.Errorf("Calls = %d, expected 1", reader.Calls)
		}
	})

	t.Run("returns error", func(t *testing.T) {
		expectedErr := errors.New("test error")
		reader := NewMockHistoryReader(nil, expectedErr)

		_, err := reader.ReadCommits(context.Background(), 1)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
	})
}

func TestMockHistoryReader_ImplementsInterface(t *testing.T) {
	// This test verifies that MockHistoryReader implements RepositoryReader
	var _ RepositoryReader = (*MockHistoryReader)(nil)
}
