package store

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

type Task struct {
	ID      int64
	OwnerID int64
	Content string
	Done    bool
	// Priority is free text; High, Medium and Low have defined sort ranks,
	// anything else sorts after them.
	Priority string
	// DueDate is a YYYY-MM-DD string, nil when the task has no due date.
	DueDate  *string
	Category string
}

const taskColumns = "id, user_id, content, done, priority, due_date, category"

// priorityRank orders High before Medium before Low; unknown values last.
func priorityRank(p string) int {
	switch p {
	case "High":
		return 1
	case "Medium":
		return 2
	case "Low":
		return 3
	default:
		return 4
	}
}

// CreateTask inserts a task owned by ownerID. Priority defaults to Medium
// and category to Personal; a blank due date is stored as NULL.
func (s *Store) CreateTask(ownerID int64, content, priority, category, dueDate string) (int64, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return 0, ErrEmptyContent
	}
	if priority == "" {
		priority = "Medium"
	}
	if category == "" {
		category = "Personal"
	}

	res, err := s.db.Exec(
		"INSERT INTO tasks (user_id, content, done, priority, due_date, category) VALUES (?, ?, ?, ?, ?, ?)",
		ownerID, content, false, priority, nullString(strings.TrimSpace(dueDate)), category,
	)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	return res.LastInsertId()
}

// GetTaskForOwner fetches a task only when ownerID owns it. A task owned by
// someone else yields the same ErrNotFound as a missing id.
func (s *Store) GetTaskForOwner(id, ownerID int64) (*Task, error) {
	row := s.db.QueryRow(
		"SELECT "+taskColumns+" FROM tasks WHERE id = ? AND user_id = ?", id, ownerID,
	)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query task: %w", err)
	}
	return t, nil
}

// UpdateTask rewrites the mutable fields of an owned task.
func (s *Store) UpdateTask(id, ownerID int64, content, priority, category, dueDate string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}
	if _, err := s.GetTaskForOwner(id, ownerID); err != nil {
		return err
	}
	_, err := s.db.Exec(
		"UPDATE tasks SET content = ?, priority = ?, category = ?, due_date = ? WHERE id = ?",
		content, priority, category, nullString(strings.TrimSpace(dueDate)), id,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// ToggleDone flips the done flag in a single statement, so two concurrent
// toggles cannot lose an update.
func (s *Store) ToggleDone(id, ownerID int64) error {
	res, err := s.db.Exec(
		"UPDATE tasks SET done = NOT done WHERE id = ? AND user_id = ?", id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("toggle task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("toggle task: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask removes an owned task and cascades its share grants.
func (s *Store) DeleteTask(id, ownerID int64) error {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	// Grants must not outlive the task. The schema also cascades, but not
	// every MySQL deployment runs with foreign keys intact.
	if _, err := s.db.Exec("DELETE FROM task_shares WHERE task_id = ?", id); err != nil {
		return fmt.Errorf("delete task shares: %w", err)
	}
	return nil
}

// TasksByOwner returns the user's own tasks in insertion order, as exported
// to CSV.
func (s *Store) TasksByOwner(ownerID int64) ([]Task, error) {
	rows, err := s.db.Query(
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = ? ORDER BY id ASC", ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

// ListVisible computes the task list a user sees: their own tasks plus tasks
// shared with them, optionally restricted to one category, in the requested
// order. The filter is applied before sorting.
//
// Sort keys: "due_date" (ascending, tasks without a due date first),
// "priority" (High, Medium, Low, then everything else; ties by id
// ascending), "oldest" (id ascending) and the default "newest" (id
// descending).
func (s *Store) ListVisible(userID int64, category, sortKey string) ([]Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE (user_id = ? OR id IN (SELECT task_id FROM task_shares WHERE user_id = ?))"
	args := []any{userID, userID}

	if category != "All" {
		query += " AND category = ?"
		args = append(args, category)
	}

	switch sortKey {
	case "due_date":
		// NULL due dates order first under ASC on both backends.
		query += " ORDER BY due_date ASC, id ASC"
	case "oldest", "priority":
		query += " ORDER BY id ASC"
	default: // newest
		query += " ORDER BY id DESC"
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}

	if sortKey == "priority" {
		// Rank order is not lexicographic, so it is applied here. The sort
		// is stable over an id-ascending fetch, keeping ties deterministic.
		sort.SliceStable(tasks, func(i, j int) bool {
			return priorityRank(tasks[i].Priority) < priorityRank(tasks[j].Priority)
		})
	}
	return tasks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	var (
		t       Task
		dueDate sql.NullString
	)
	err := row.Scan(&t.ID, &t.OwnerID, &t.Content, &t.Done, &t.Priority, &dueDate, &t.Category)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid && dueDate.String != "" {
		t.DueDate = &dueDate.String
	}
	return &t, nil
}

func scanTasks(rows *sql.Rows) ([]Task, error) {
	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// DueTask is a task joined with its owner, as the reminder job consumes it.
type DueTask struct {
	Task
	OwnerUsername string
	OwnerEmail    string
}

// TasksDueOn returns undone tasks whose due date equals the given
// YYYY-MM-DD string, along with the owner's username and email.
func (s *Store) TasksDueOn(date string) ([]DueTask, error) {
	rows, err := s.db.Query(
		`SELECT t.id, t.user_id, t.content, t.done, t.priority, t.due_date, t.category,
			u.username, COALESCE(u.email, '')
		FROM tasks t
		JOIN users u ON t.user_id = u.id
		WHERE t.due_date = ? AND t.done = ?
		ORDER BY t.id ASC`,
		date, false,
	)
	if err != nil {
		return nil, fmt.Errorf("query due tasks: %w", err)
	}
	defer rows.Close()

	var due []DueTask
	for rows.Next() {
		var (
			d       DueTask
			dueDate sql.NullString
		)
		err := rows.Scan(&d.ID, &d.OwnerID, &d.Content, &d.Done, &d.Priority,
			&dueDate, &d.Category, &d.OwnerUsername, &d.OwnerEmail)
		if err != nil {
			return nil, fmt.Errorf("scan due task: %w", err)
		}
		if dueDate.Valid {
			d.DueDate = &dueDate.String
		}
		due = append(due, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate due tasks: %w", err)
	}
	return due, nil
}
