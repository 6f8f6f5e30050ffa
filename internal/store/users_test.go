package store

import (
	"errors"
	"testing"
)

func TestCreateUserDuplicate(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateUser("alice", "pw1"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := s.CreateUser("alice", "pw2"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE username = 'alice'").Scan(&n); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 1 {
		t.Errorf("expected exactly one alice, got %d", n)
	}
}

func TestCreateUserRequiresFields(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateUser("", "pw"); err == nil {
		t.Error("expected error for empty username")
	}
	if _, err := s.CreateUser("bob", ""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestAuthenticate(t *testing.T) {
	s := newTestStore(t)
	mustCreateUser(t, s, "alice")

	u, err := s.Authenticate("alice", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.Username != "alice" {
		t.Errorf("got username %q", u.Username)
	}

	// Wrong password and unknown user must fail with the same error.
	if _, err := s.Authenticate("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Authenticate("nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestPasswordNotStoredInPlaintext(t *testing.T) {
	s := newTestStore(t)
	mustCreateUser(t, s, "alice")

	var hash string
	if err := s.db.QueryRow("SELECT password_hash FROM users WHERE username = 'alice'").Scan(&hash); err != nil {
		t.Fatalf("read hash: %v", err)
	}
	if hash == "secret" || hash == "" {
		t.Errorf("password stored insecurely: %q", hash)
	}
}

func TestUpdateEmail(t *testing.T) {
	s := newTestStore(t)
	id := mustCreateUser(t, s, "alice")

	if err := s.UpdateEmail(id, "alice@example.com"); err != nil {
		t.Fatalf("update email: %v", err)
	}
	u, err := s.GetUserByID(id)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("got email %q", u.Email)
	}

	if err := s.UpdateEmail(id, ""); err != nil {
		t.Fatalf("clear email: %v", err)
	}
	u, _ = s.GetUserByID(id)
	if u.Email != "" {
		t.Errorf("email not cleared: %q", u.Email)
	}
}

func TestSessions(t *testing.T) {
	s := newTestStore(t)
	id := mustCreateUser(t, s, "alice")

	token, err := s.CreateSession(id)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	u, err := s.GetUserBySession(token)
	if err != nil {
		t.Fatalf("resolve session: %v", err)
	}
	if u.ID != id {
		t.Errorf("session resolved to user %d, want %d", u.ID, id)
	}

	s.DeleteSession(token)
	if _, err := s.GetUserBySession(token); err == nil {
		t.Error("expected error for deleted session")
	}
}
