// Package metrics defines and registers all custom Prometheus metrics for
// the identity federation service. It is the single source of truth for
// metric names, labels, and help strings.
//
// Metrics are registered with the default registry via promauto at package
// load; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "federation"

// ── Login metrics ─────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts unified tokens minted by successful logins.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of unified tokens issued.",
	},
)

// ── Exchange metrics ──────────────────────────────────────────────────────────

// ExchangesTotal counts token exchange attempts.
// Labels:
//   - platform: the requested platform name as submitted by the caller
//   - result: "success", "invalid_token", "revoked", "not_linked", "unknown_platform"
var ExchangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exchanges_total",
		Help:      "Total number of token exchange attempts, by platform and result.",
	},
	[]string{"platform", "result"},
)

// TokenRevocationsTotal counts tokens withdrawn before their natural expiry.
var TokenRevocationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_revocations_total",
		Help:      "Total number of tokens revoked ahead of expiry.",
	},
)

// ── Aggregation metrics ───────────────────────────────────────────────────────

// ProfileReadsTotal counts per-platform reads issued during aggregation.
// Labels:
//   - platform: the platform store queried
//   - result: "ok", "missing" (record absent), or "unavailable" (store error/timeout)
var ProfileReadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_reads_total",
		Help:      "Total number of platform store reads during profile aggregation, by result.",
	},
	[]string{"platform", "result"},
)

// AggregationDuration measures a full profile aggregation from master read
// to merged view, including the concurrent platform fan-out.
var AggregationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "aggregation_duration_seconds",
		Help:      "Duration of profile aggregation across all linked platform stores.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
