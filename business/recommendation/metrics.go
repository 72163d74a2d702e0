package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	recommendationsServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total scored candidates returned, by retrieval source",
		},
		[]string{"source"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(recommendationsServed)
}
