package store

import (
	"path/filepath"
	"testing"

	"github.com/dmoren/tasklist/internal/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(config.DBConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCreateUser(t *testing.T, s *Store, username string) int64 {
	t.Helper()
	id, err := s.CreateUser(username, "secret")
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return id
}

func mustCreateTask(t *testing.T, s *Store, ownerID int64, content, priority, category, dueDate string) int64 {
	t.Helper()
	id, err := s.CreateTask(ownerID, content, priority, category, dueDate)
	if err != nil {
		t.Fatalf("create task %q: %v", content, err)
	}
	return id
}
