// Package metrics defines the custom Prometheus metrics for the
// company-management API. It is the single source of truth for metric
// names, labels, and help strings; HTTP-level request metrics come from
// the echoprometheus middleware and are not declared here.
//
// Metrics register with the default registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "company_mgmt"

// ── Messaging metrics ─────────────────────────────────────────────────────────

// MessagesSentTotal counts messages accepted and persisted via POST /api/messages.
var MessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of messages persisted.",
	},
)

// RealtimePushesTotal counts events handed to a live connection.
// Label:
//   - event: "receive_message" or "notification"
var RealtimePushesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_pushes_total",
		Help:      "Total number of events pushed to live connections, by event name.",
	},
	[]string{"event"},
)

// RealtimeOfflineTotal counts deliveries skipped because the receiver had
// no registered connection at send time.
var RealtimeOfflineTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_offline_total",
		Help:      "Total number of deliveries skipped for offline receivers.",
	},
)

// RealtimeDroppedTotal counts pushes dropped after the receiver was found.
// Label:
//   - reason: "slow_peer" (send buffer full) or "queue_full" (dispatcher shard full)
var RealtimeDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_dropped_total",
		Help:      "Total number of pushes dropped, by reason.",
	},
	[]string{"reason"},
)

// RealtimeConnections tracks the current number of registered connections.
var RealtimeConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "realtime_connections",
		Help:      "Current number of users with a registered live connection.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
