// Package metrics registers the prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasklist_http_requests_total",
			Help: "HTTP requests by route pattern and status code.",
		},
		[]string{"route", "status"},
	)

	TasksCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tasklist_tasks_created_total",
			Help: "Tasks created through the web form.",
		},
	)

	RemindersSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tasklist_reminders_sent_total",
			Help: "Reminder emails handed to the mail transport.",
		},
	)

	RemindersSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tasklist_reminders_skipped_total",
			Help: "Due tasks skipped because the owner has no email.",
		},
	)

	RemindersFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tasklist_reminders_failed_total",
			Help: "Reminder sends that returned an error.",
		},
	)
)
