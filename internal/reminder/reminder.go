// Package reminder scans for undone tasks due today and dispatches one
// email per eligible task.
package reminder

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dmoren/tasklist/internal/mail"
	"github.com/dmoren/tasklist/internal/metrics"
	"github.com/dmoren/tasklist/internal/store"
)

// Result counts the outcome of one run.
type Result struct {
	Sent    int
	Skipped int
	Failed  int
}

// Run sends a reminder for every undone task whose due date equals now's
// local YYYY-MM-DD date. Owners without an email are skipped with a log
// line; a failed send is logged and the batch continues. The job keeps no
// delivery state, so re-running within the same day re-sends; the external
// scheduler is expected to run it once per day and never concurrently.
//
// The date match is plain string equality against the server's local date.
// There is no timezone handling; a user in another timezone gets the
// server's notion of "today".
func Run(s *store.Store, m mail.Mailer, now time.Time) (Result, error) {
	var res Result
	today := now.Format("2006-01-02")

	log.Info("checking for due tasks", "date", today)
	due, err := s.TasksDueOn(today)
	if err != nil {
		return res, fmt.Errorf("load due tasks: %w", err)
	}
	if len(due) == 0 {
		log.Info("no tasks due today")
		return res, nil
	}

	for _, t := range due {
		if t.OwnerEmail == "" {
			log.Warn("skipping task, owner has no email", "task", t.Content, "user", t.OwnerUsername)
			metrics.RemindersSkipped.Inc()
			res.Skipped++
			continue
		}

		subject := fmt.Sprintf("Reminder: %s is due today!", t.Content)
		body := fmt.Sprintf(
			"Hello %s,\n\nJust a friendly reminder that your task '%s' is due today (%s).\n\nGet it done!\n\n- Tasklist",
			t.OwnerUsername, t.Content, today,
		)

		if err := m.Send(t.OwnerEmail, subject, body); err != nil {
			log.Error("failed to send reminder", "task", t.Content, "to", t.OwnerEmail, "err", err)
			metrics.RemindersFailed.Inc()
			res.Failed++
			continue
		}
		log.Info("reminder sent", "task", t.Content, "to", t.OwnerEmail)
		metrics.RemindersSent.Inc()
		res.Sent++
	}

	return res, nil
}
