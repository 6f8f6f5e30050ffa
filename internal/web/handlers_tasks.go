package web

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/dmoren/tasklist/internal/auth"
	"github.com/dmoren/tasklist/internal/metrics"
	"github.com/dmoren/tasklist/internal/store"
)

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)

	category := r.URL.Query().Get("category")
	if category == "" {
		category = "All"
	}
	sortKey := r.URL.Query().Get("sort")
	if sortKey == "" {
		sortKey = "newest"
	}

	flash := auth.TakeFlash(w, r)
	tasks, err := s.store.ListVisible(u.ID, category, sortKey)
	if err != nil {
		log.Error("list tasks", "user", u.ID, "err", err)
		flash = "Could not load your tasks."
		tasks = nil
	}

	render(w, "index.html", map[string]any{
		"User":            u,
		"Tasks":           tasks,
		"CurrentCategory": category,
		"CurrentSort":     sortKey,
		"Categories":      []string{"All", "Personal", "Work", "Shopping", "Other"},
		"Sorts":           []string{"newest", "oldest", "priority", "due_date"},
		"Flash":           flash,
	})
}

func (s *server) handleAdd(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)

	_, err := s.store.CreateTask(u.ID,
		r.FormValue("task"),
		r.FormValue("priority"),
		r.FormValue("category"),
		r.FormValue("due_date"),
	)
	switch {
	case errors.Is(err, store.ErrEmptyContent):
		// Blank submissions are ignored.
	case err != nil:
		log.Error("create task", "user", u.ID, "err", err)
		auth.Flash(w, "Could not add the task.")
	default:
		metrics.TasksCreated.Inc()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleEditPage(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	t, err := s.store.GetTaskForOwner(taskID(r), u.ID)
	if err != nil {
		// Missing and non-owned ids land here alike.
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, "edit.html", map[string]any{
		"User": u,
		"Task": t,
	})
}

func (s *server) handleEdit(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)

	err := s.store.UpdateTask(taskID(r), u.ID,
		r.FormValue("task"),
		r.FormValue("priority"),
		r.FormValue("category"),
		r.FormValue("due_date"),
	)
	if err != nil && !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrEmptyContent) {
		log.Error("update task", "user", u.ID, "err", err)
		auth.Flash(w, "Could not update the task.")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleToggle(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	err := s.store.ToggleDone(taskID(r), u.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Error("toggle task", "user", u.ID, "err", err)
		auth.Flash(w, "Could not update the task.")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	err := s.store.DeleteTask(taskID(r), u.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Error("delete task", "user", u.ID, "err", err)
		auth.Flash(w, "Could not delete the task.")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
