// Package metrics defines and registers all custom Prometheus metrics for the
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time;
// the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// AuthAttemptsTotal counts authentication attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "ok", "denied" (bad credentials / duplicate identity), or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register/login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// AccessDeniedTotal counts requests rejected by the ownership rules.
// Labels:
//   - collection: the target collection
//   - verb: "read" or "write"
//   - reason: "unauthenticated" or "forbidden"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied by the access control engine.",
	},
	[]string{"collection", "verb", "reason"},
)

// RecordWritesTotal counts successful store writes that passed the access
// control engine.
// Labels:
//   - collection: the target collection
//   - operation: "create", "update", or "delete"
var RecordWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_writes_total",
		Help:      "Total number of authorized record writes, by collection and operation.",
	},
	[]string{"collection", "operation"},
)

// ContractTransitionsTotal counts applied contract status changes.
// Label:
//   - status: the new status (e.g. "aceito")
var ContractTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contract_transitions_total",
		Help:      "Total number of contract status transitions applied.",
	},
	[]string{"status"},
)

// RatingsSubmittedTotal counts accepted contract ratings.
var RatingsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of contract ratings accepted.",
	},
)
