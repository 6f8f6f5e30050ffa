package store

import (
	"errors"
	"fmt"
)

// Share is a view grant on a task, joined with the grantee's username for
// display on the share page.
type Share struct {
	ID         int64
	TaskID     int64
	UserID     int64
	Permission string
	Username   string
}

// ShareTask grants granteeUsername read access to a task. Ownership is
// re-verified here: the share endpoint is reachable by any authenticated
// user with any task id, so the caller's check alone is not trusted.
// Sharing the same task with the same user twice is a no-op reported as
// ErrAlreadyShared.
func (s *Store) ShareTask(taskID, ownerID int64, granteeUsername string) error {
	var owned bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM tasks WHERE id = ? AND user_id = ?)", taskID, ownerID,
	).Scan(&owned)
	if err != nil {
		return fmt.Errorf("check ownership: %w", err)
	}
	if !owned {
		return ErrNotFound
	}

	grantee, err := s.GetUserByUsername(granteeUsername)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	var exists bool
	err = s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM task_shares WHERE task_id = ? AND user_id = ?)", taskID, grantee.ID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check share: %w", err)
	}
	if exists {
		return ErrAlreadyShared
	}

	_, err = s.db.Exec(
		"INSERT INTO task_shares (task_id, user_id, permission) VALUES (?, ?, 'view')",
		taskID, grantee.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyShared
		}
		return fmt.Errorf("insert share: %w", err)
	}
	return nil
}

// SharesForTask lists the grants on a task with grantee usernames.
func (s *Store) SharesForTask(taskID int64) ([]Share, error) {
	rows, err := s.db.Query(
		`SELECT ts.id, ts.task_id, ts.user_id, ts.permission, u.username
		FROM task_shares ts
		JOIN users u ON ts.user_id = u.id
		WHERE ts.task_id = ?
		ORDER BY ts.id ASC`, taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("query shares: %w", err)
	}
	defer rows.Close()

	var shares []Share
	for rows.Next() {
		var sh Share
		if err := rows.Scan(&sh.ID, &sh.TaskID, &sh.UserID, &sh.Permission, &sh.Username); err != nil {
			return nil, fmt.Errorf("scan share: %w", err)
		}
		shares = append(shares, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shares: %w", err)
	}
	return shares, nil
}

// ShareCountForTask reports how many grants reference a task.
func (s *Store) ShareCountForTask(taskID int64) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM task_shares WHERE task_id = ?", taskID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count shares: %w", err)
	}
	return n, nil
}
