// Package metrics exposes the operational counters of the auth gate.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// GateDecisions counts rate-limit gate outcomes per action.
	GateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mytunes_gate_decisions_total",
		Help: "Rate limit gate decisions by action and outcome.",
	}, []string{"action", "outcome"})

	// LimiterStoreErrors counts failures to reach the counter store. This is
	// the one limiter signal that should page rather than inform the caller.
	LimiterStoreErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mytunes_limiter_store_errors_total",
		Help: "Failed round-trips to the rate limit counter store.",
	})

	// TokenVerifications counts bearer token checks by result.
	TokenVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mytunes_token_verifications_total",
		Help: "Bearer token verifications by result.",
	}, []string{"result"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
