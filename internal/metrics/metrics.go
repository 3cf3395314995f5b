package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts requests per route, method and status code
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPDuration tracks request latency per route
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// SchedulesReconciled counts successful schedule reconciliations
	SchedulesReconciled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "schedules_reconciled_total",
			Help: "Number of schedules reconciled",
		},
	)

	// ReconcileNoSchedule counts payloads with no recognizable schedule
	ReconcileNoSchedule = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reconcile_no_schedule_total",
			Help: "Number of reconcile requests carrying no schedule shape",
		},
	)

	// StatementEntries counts payment transactions lifted from statements
	StatementEntries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "statement_entries_total",
			Help: "Number of payment transactions parsed from bank statements",
		},
	)

	// InboxPolls counts statement inbox polls by outcome
	InboxPolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inbox_polls_total",
			Help: "Statement inbox poll runs",
		},
		[]string{"status"},
	)

	// RemindersSent counts reminder emails by outcome
	RemindersSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_sent_total",
			Help: "Borrower reminder emails sent",
		},
		[]string{"status"},
	)
)
