// Package metrics defines and registers all custom Prometheus metrics for the
// identity gateway. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry via promauto at
// package load time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// ResolutionsTotal counts identity resolution attempts by outcome.
// Label:
//   - result: "ok", "unauthorized", "forbidden", or "error"
var ResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolutions_total",
		Help:      "Total number of identity resolution attempts, by result.",
	},
	[]string{"result"},
)

// UsersAutoCreatedTotal counts users provisioned on first sight of an unknown
// identity (the auto-create path).
var UsersAutoCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_autocreated_total",
		Help:      "Total number of users auto-created from unknown identity claims.",
	},
)

// RoleDenialsTotal counts requests rejected because the resolved user lacked a
// required role.
// Label:
//   - role: the role the user actually holds
var RoleDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_denials_total",
		Help:      "Total number of requests denied by the role check.",
	},
	[]string{"role"},
)

// ResolutionDuration measures how long an identity resolution takes, including
// the store round trips.
// Label:
//   - result: "ok", "unauthorized", "forbidden", or "error"
var ResolutionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "resolution_duration_seconds",
		Help:      "Duration of identity resolution from header extraction to context attachment.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
