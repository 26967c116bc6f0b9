package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Gate decision labels for MigrationsEvaluated.
const (
	DecisionApproved      = "approved"
	DecisionTargetUnknown = "target_unknown"
	DecisionBadZoneConfig = "bad_zone_config"
	DecisionZoneSpread    = "zone_spread"
	DecisionScatterWidth  = "scatter_width"
)

var (
	// Gate metrics
	MigrationsEvaluated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cairn_sched_migrations_evaluated_total",
			Help: "Total candidate migrations evaluated by the gate, by decision",
		},
		[]string{"decision"},
	)

	FeasibilityChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cairn_sched_feasibility_checks_total",
			Help: "Total scatter-width feasibility evaluations, by outcome",
		},
		[]string{"satisfied"},
	)

	AffectedScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cairn_sched_affected_score",
			Help:    "Aggregate scatter-width delta of evaluated migrations",
			Buckets: []float64{-8, -4, -2, -1, 0, 1, 2, 4, 8},
		},
	)
)

func init() {
	prometheus.MustRegister(MigrationsEvaluated)
	prometheus.MustRegister(FeasibilityChecks)
	prometheus.MustRegister(AffectedScore)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
