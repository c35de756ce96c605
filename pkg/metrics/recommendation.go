package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation HTTP handlers
	RecommendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommendation_latency_seconds",
		Help:    "Latency of recommendation endpoints",
		Buckets: prometheus.DefBuckets,
	})

	// Recommendation requests served, by mode
	RecommendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total recommendation requests served, by mode.",
		},
		[]string{"mode"},
	)

	// Requests answered with an empty list for lack of signal
	RecommendEmptyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_empty_results_total",
			Help: "Recommendation requests that returned no results, by mode.",
		},
		[]string{"mode"},
	)
)

func Init() {
	prometheus.MustRegister(
		RecommendDuration,
		RecommendRequestsTotal,
		RecommendEmptyTotal,
	)
}
