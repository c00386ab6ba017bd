// Package metrics defines and registers all custom Prometheus metrics for
// the booking API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry via promauto
// at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// AppointmentsCreatedTotal counts newly booked appointments.
// Label:
//   - category: the snapshotted service category (e.g. "plumbing")
var AppointmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_created_total",
		Help:      "Total number of appointments created, by service category.",
	},
	[]string{"category"},
)

// StatusTransitionsTotal counts successful lifecycle transitions.
// Labels:
//   - status: the status reached (e.g. "admin_approved")
//   - actor: "admin" or "provider"
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of appointment status transitions, by target status and actor.",
	},
	[]string{"status", "actor"},
)

// ProviderDecisionsTotal counts admin decisions on provider applications.
// Label:
//   - status: the approval status set (e.g. "approved", "rejected")
var ProviderDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_decisions_total",
		Help:      "Total number of provider application decisions, by resulting status.",
	},
	[]string{"status"},
)

// NotificationsSentTotal counts notifications delivered successfully.
// Label:
//   - kind: the lifecycle event kind (e.g. "admin_approved")
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of notifications delivered, by event kind.",
	},
	[]string{"kind"},
)

// NotificationsFailedTotal counts notification deliveries that failed.
// Delivery is at-most-once, so every increment here is a dropped message.
var NotificationsFailedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_failed_total",
		Help:      "Total number of failed notification deliveries, by event kind.",
	},
	[]string{"kind"},
)

// NotificationQueueDepth tracks the events waiting in each dispatcher worker
// channel.
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
