/*
Package metrics exposes Prometheus metrics for the placement engine.

Metrics are package-level collectors registered in init, following the
standard client_golang pattern. The scheduler gate records one
observation per evaluated candidate:

  - cairn_sched_migrations_evaluated_total{decision}: gate outcomes,
    labelled approved / target_unknown / bad_zone_config / zone_spread /
    scatter_width. Rejection labels name the first rule that failed.
  - cairn_sched_feasibility_checks_total{satisfied}: scatter-width
    feasibility evaluations by outcome.
  - cairn_sched_affected_score: histogram of the aggregate scatter-width
    delta of evaluated migrations. Negative buckets matter: a healthy
    rebalance run trends toward small or negative affected scores.

Handler returns the promhttp handler; embedders mount it wherever their
telemetry listener lives:

	http.Handle("/metrics", metrics.Handler())
*/
package metrics
