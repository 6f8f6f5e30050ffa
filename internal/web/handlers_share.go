package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dmoren/tasklist/internal/auth"
	"github.com/dmoren/tasklist/internal/store"
)

func (s *server) handleSharePage(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	id := taskID(r)

	t, err := s.store.GetTaskForOwner(id, u.ID)
	if err != nil {
		auth.Flash(w, "You can only share your own tasks.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	shares, err := s.store.SharesForTask(id)
	if err != nil {
		log.Error("list shares", "task", id, "err", err)
	}

	render(w, "share.html", map[string]any{
		"User":   u,
		"Task":   t,
		"Shares": shares,
		"Flash":  auth.TakeFlash(w, r),
	})
}

func (s *server) handleShare(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)
	username := strings.TrimSpace(r.FormValue("username"))

	err := s.store.ShareTask(taskID(r), u.ID, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		auth.Flash(w, "You can only share your own tasks.")
	case errors.Is(err, store.ErrUserNotFound):
		auth.Flash(w, "User not found.")
	case errors.Is(err, store.ErrAlreadyShared):
		auth.Flash(w, "Already shared with "+username+".")
	case err != nil:
		log.Error("share task", "user", u.ID, "err", err)
		auth.Flash(w, "Could not share the task.")
	default:
		auth.Flash(w, "Task shared with "+username+"!")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
