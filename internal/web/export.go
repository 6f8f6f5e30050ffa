package web

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/dmoren/tasklist/internal/auth"
)

// handleExport streams the user's own tasks as CSV. Done is rendered
// True/False and a missing due date becomes an empty field, matching the
// format downstream imports already consume.
func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	u := auth.CurrentUser(r)

	tasks, err := s.store.TasksByOwner(u.ID)
	if err != nil {
		log.Error("export tasks", "user", u.ID, "err", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=tasks.csv")

	cw := csv.NewWriter(w)
	cw.Write([]string{"ID", "Task", "Done", "Priority", "Due Date", "Category"})
	for _, t := range tasks {
		done := "False"
		if t.Done {
			done = "True"
		}
		due := ""
		if t.DueDate != nil {
			due = *t.DueDate
		}
		cw.Write([]string{strconv.FormatInt(t.ID, 10), t.Content, done, t.Priority, due, t.Category})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Error("write csv", "user", u.ID, "err", err)
	}
}
