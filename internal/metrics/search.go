package metrics

import "github.com/prometheus/client_golang/prometheus"

// Label values for IntentExtractionsTotal.
const (
	StrategyAI    = "ai"
	StrategyRules = "rules"

	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
)

// Search engine metrics. Registered explicitly via RegisterSearchMetrics
// (no init()) so tests can use the collectors without a registry.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "furndex",
			Name:      "searches_total",
			Help:      "Total number of search pipeline executions",
		},
		[]string{"status"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "furndex",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search pipeline duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	IntentExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "furndex",
			Name:      "intent_extractions_total",
			Help:      "Intent extractions by strategy and outcome",
		},
		[]string{"strategy", "outcome"},
	)

	CatalogErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "furndex",
			Name:      "catalog_errors_total",
			Help:      "Catalog store failures degraded to empty candidate sets",
		},
	)

	CandidatesScored = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "furndex",
			Name:      "candidates_scored",
			Help:      "Number of candidates scored per search before truncation",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)
)

// RegisterSearchMetrics registers the engine collectors with the default
// prometheus registry. Call once from the composition root.
func RegisterSearchMetrics() {
	prometheus.MustRegister(
		SearchesTotal,
		SearchDuration,
		IntentExtractionsTotal,
		CatalogErrorsTotal,
		CandidatesScored,
	)
}
