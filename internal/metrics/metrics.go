package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "lookup_agents"

// Provider and ask Prometheus metrics.
var (
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Total number of provider lookups",
		},
		[]string{"source", "status"}, // status: ok / empty / error
	)

	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Provider lookup duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	AsksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "asks_total",
			Help:      "Total number of answered asks",
		},
		[]string{"mode", "cache"}, // cache: hit / miss
	)

	SummarySentences = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "summary_sentences",
			Help:      "Number of sentences in merged summaries",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 7, 8},
		},
	)
)

func init() {
	prometheus.MustRegister(ProviderRequestsTotal)
	prometheus.MustRegister(ProviderRequestDuration)
	prometheus.MustRegister(AsksTotal)
	prometheus.MustRegister(SummarySentences)
}
