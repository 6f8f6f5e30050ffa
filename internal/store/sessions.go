package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"
)

const sessionTTL = 30 * 24 * time.Hour

// CreateSession issues a new login token for the user.
func (s *Store) CreateSession(userID int64) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	expires := time.Now().Add(sessionTTL)

	_, err := s.db.Exec(
		"INSERT INTO sessions (user_id, token, expires_at) VALUES (?, ?, ?)",
		userID, token, expires,
	)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return token, nil
}

// GetUserBySession resolves a session token to its user. Expired sessions
// are removed on read.
func (s *Store) GetUserBySession(token string) (*User, error) {
	var (
		userID    int64
		expiresAt time.Time
	)
	err := s.db.QueryRow(
		"SELECT user_id, expires_at FROM sessions WHERE token = ?", token,
	).Scan(&userID, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	if time.Now().After(expiresAt) {
		s.db.Exec("DELETE FROM sessions WHERE token = ?", token)
		return nil, fmt.Errorf("session expired")
	}
	return s.GetUserByID(userID)
}

func (s *Store) DeleteSession(token string) {
	s.db.Exec("DELETE FROM sessions WHERE token = ?", token)
}
