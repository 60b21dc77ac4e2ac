// Package metrics holds the Prometheus instruments for the arena server,
// exposed on the HTTP port next to /ping.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "arena"

var (
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Number of live sessions currently tracked by the registry.",
	})

	SessionsAdmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_admitted_total",
		Help:      "Connections admitted into the registry.",
	})

	SessionsRefused = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_refused_total",
		Help:      "Connections refused because the session ceiling was reached.",
	})

	MovesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moves_total",
		Help:      "Move applications by outcome.",
	}, []string{"outcome"})

	BroadcastsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcasts_total",
		Help:      "State and terminal-event broadcasts sent to all live sessions.",
	})

	MalformedPayloads = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "malformed_payloads_total",
		Help:      "Inbound payloads dropped because they did not parse.",
	})
)
