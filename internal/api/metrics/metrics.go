// Package metrics defines and registers the custom Prometheus metrics for the
// vision board API. It is the single source of truth for metric names, labels,
// and help strings. Request-level metrics (latency, status codes) come from
// the echoprometheus middleware; only domain-specific counters live here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "visionboard"

// LoginsTotal counts login attempts by result ("success" / "failure").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Login attempts by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts by result
// ("success" / "email_taken" / "username_taken" / "invalid" / "error").
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Registration attempts by result.",
	},
	[]string{"result"},
)

// BoardWritesTotal counts board mutations by operation
// ("create" / "update" / "delete") and outcome
// ("created" / "modified" / "unchanged" / "not_found" / "error").
var BoardWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "board_writes_total",
		Help:      "Board write operations by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// ReferenceFailuresTotal counts two-step writes whose second step (the parent
// reference push/pull) failed, leaving documents for the repair sweep.
var ReferenceFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reference_failures_total",
		Help:      "Two-step writes that left an inconsistent parent reference.",
	},
)
