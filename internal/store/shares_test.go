package store

import (
	"errors"
	"testing"
)

func TestShareTask(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice")
	mustCreateUser(t, s, "bob")
	id := mustCreateTask(t, s, alice, "shared", "", "", "")

	if err := s.ShareTask(id, alice, "bob"); err != nil {
		t.Fatalf("share: %v", err)
	}

	shares, err := s.SharesForTask(id)
	if err != nil {
		t.Fatalf("list shares: %v", err)
	}
	if len(shares) != 1 || shares[0].Username != "bob" || shares[0].Permission != "view" {
		t.Fatalf("unexpected shares: %+v", shares)
	}
}

func TestShareTaskIdempotent(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice")
	mustCreateUser(t, s, "bob")
	id := mustCreateTask(t, s, alice, "shared", "", "", "")

	if err := s.ShareTask(id, alice, "bob"); err != nil {
		t.Fatalf("first share: %v", err)
	}
	if err := s.ShareTask(id, alice, "bob"); !errors.Is(err, ErrAlreadyShared) {
		t.Fatalf("expected ErrAlreadyShared, got %v", err)
	}

	n, err := s.ShareCountForTask(id)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected exactly one grant row, got %d", n)
	}
}

func TestShareTaskUserNotFound(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice")
	id := mustCreateTask(t, s, alice, "shared", "", "", "")

	if err := s.ShareTask(id, alice, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	n, _ := s.ShareCountForTask(id)
	if n != 0 {
		t.Errorf("grant created for missing user: %d rows", n)
	}
}

func TestShareTaskRequiresOwnership(t *testing.T) {
	s := newTestStore(t)
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")
	mustCreateUser(t, s, "carol")
	id := mustCreateTask(t, s, alice, "alice's", "", "", "")

	// Bob cannot grant access to a task he does not own, and the outcome
	// matches a nonexistent task id.
	if err := s.ShareTask(id, bob, "carol"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.ShareTask(9999, bob, "carol"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}
	n, _ := s.ShareCountForTask(id)
	if n != 0 {
		t.Errorf("grant created by non-owner: %d rows", n)
	}
}
