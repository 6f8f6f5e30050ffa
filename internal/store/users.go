package store

import (
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID       int64
	Username string
	// Email is empty when the user has not set one on their profile.
	Email string
}

// CreateUser registers a new account. The password is bcrypt-hashed before
// it is stored; the plaintext never leaves this function.
func (s *Store) CreateUser(username, password string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return 0, fmt.Errorf("username and password are required")
	}

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", username).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return 0, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	res, err := s.db.Exec("INSERT INTO users (username, password_hash) VALUES (?, ?)", username, hash)
	if err != nil {
		// Lost the race between the existence check and the insert; the
		// unique index still holds the invariant.
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

// Authenticate resolves a username/password pair to a user. Unknown
// usernames and wrong passwords fail identically.
func (s *Store) Authenticate(username, password string) (*User, error) {
	var (
		u    User
		hash string
	)
	err := s.db.QueryRow(
		"SELECT id, username, password_hash, COALESCE(email, '') FROM users WHERE username = ?", username,
	).Scan(&u.ID, &u.Username, &hash, &u.Email)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

func (s *Store) GetUserByID(id int64) (*User, error) {
	var u User
	err := s.db.QueryRow(
		"SELECT id, username, COALESCE(email, '') FROM users WHERE id = ?", id,
	).Scan(&u.ID, &u.Username, &u.Email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(username string) (*User, error) {
	var u User
	err := s.db.QueryRow(
		"SELECT id, username, COALESCE(email, '') FROM users WHERE username = ?", username,
	).Scan(&u.ID, &u.Username, &u.Email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// UpdateEmail sets the reminder address on a user's profile. An empty email
// clears it.
func (s *Store) UpdateEmail(userID int64, email string) error {
	_, err := s.db.Exec("UPDATE users SET email = ? WHERE id = ?", nullString(strings.TrimSpace(email)), userID)
	if err != nil {
		return fmt.Errorf("update email: %w", err)
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
