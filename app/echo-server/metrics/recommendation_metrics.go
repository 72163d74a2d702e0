package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RecommendDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of recommendation endpoints",
		Buckets: prometheus.DefBuckets,
	})

	RecommendTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_items_total",
		Help: "Total recommended items served",
	})
)

func Init() {
	prometheus.MustRegister(RecommendDuration, RecommendTotal)
}
