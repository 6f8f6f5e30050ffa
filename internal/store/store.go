// Package store implements persistence for users, sessions, tasks and share
// grants over database/sql. The backend is a configuration choice: the
// embedded sqlite store or a networked MySQL server, with identical queries
// and per-driver DDL.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/dmoren/tasklist/internal/config"
)

var (
	// ErrNotFound covers both a missing task id and a task owned by someone
	// else. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("task not found")

	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyShared      = errors.New("task already shared with user")
	ErrEmptyContent       = errors.New("task content is empty")
)

type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the configured backend and applies the schema.
func Open(cfg config.DBConfig) (*Store, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case "sqlite":
		db, err = sql.Open("sqlite", cfg.DSN+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	case "mysql":
		dsn := cfg.DSN
		// expires_at scans into time.Time
		if !strings.Contains(dsn, "parseTime") {
			if strings.Contains(dsn, "?") {
				dsn += "&parseTime=true"
			} else {
				dsn += "?parseTime=true"
			}
		}
		db, err = sql.Open("mysql", dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	s := &Store{db: db, driver: cfg.Driver}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	var migrations []string
	if s.driver == "mysql" {
		migrations = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id INT AUTO_INCREMENT PRIMARY KEY,
				username VARCHAR(150) NOT NULL UNIQUE,
				password_hash VARCHAR(256) NOT NULL,
				email VARCHAR(150)
			)`,
			`CREATE TABLE IF NOT EXISTS tasks (
				id INT AUTO_INCREMENT PRIMARY KEY,
				user_id INT NOT NULL,
				content VARCHAR(500) NOT NULL,
				done BOOLEAN NOT NULL DEFAULT FALSE,
				priority VARCHAR(50) NOT NULL DEFAULT 'Medium',
				due_date VARCHAR(50),
				category VARCHAR(50) NOT NULL DEFAULT 'Personal',
				FOREIGN KEY (user_id) REFERENCES users(id)
			)`,
			`CREATE TABLE IF NOT EXISTS task_shares (
				id INT AUTO_INCREMENT PRIMARY KEY,
				task_id INT NOT NULL,
				user_id INT NOT NULL,
				permission VARCHAR(50) NOT NULL DEFAULT 'view',
				UNIQUE (task_id, user_id),
				FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE,
				FOREIGN KEY (user_id) REFERENCES users(id)
			)`,
			`CREATE TABLE IF NOT EXISTS sessions (
				id INT AUTO_INCREMENT PRIMARY KEY,
				user_id INT NOT NULL,
				token VARCHAR(64) NOT NULL UNIQUE,
				expires_at DATETIME NOT NULL,
				FOREIGN KEY (user_id) REFERENCES users(id)
			)`,
		}
	} else {
		migrations = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				email TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS tasks (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL REFERENCES users(id),
				content TEXT NOT NULL,
				done INTEGER NOT NULL DEFAULT 0,
				priority TEXT NOT NULL DEFAULT 'Medium',
				due_date TEXT,
				category TEXT NOT NULL DEFAULT 'Personal'
			)`,
			`CREATE TABLE IF NOT EXISTS task_shares (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
				user_id INTEGER NOT NULL REFERENCES users(id),
				permission TEXT NOT NULL DEFAULT 'view',
				UNIQUE (task_id, user_id)
			)`,
			`CREATE TABLE IF NOT EXISTS sessions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL REFERENCES users(id),
				token TEXT NOT NULL UNIQUE,
				expires_at DATETIME NOT NULL
			)`,
		}
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// isUniqueViolation reports whether err is a unique-constraint error from
// either backend.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE") || strings.Contains(msg, "Duplicate entry")
}
