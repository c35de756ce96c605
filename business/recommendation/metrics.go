package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SimilarUserQueriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "similar_user_queries_total",
			Help: "Count of similar-user queries served.",
		},
	)
)

func init() {
	prometheus.MustRegister(SimilarUserQueriesTotal)
}
