package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "widget_api_requests_total",
			Help: "Number of API requests",
		},
		[]string{"method", "route", "status"},
	)
	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "widget_api_latency_seconds",
			Help:    "API latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	WidgetWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "widget_writes_total",
			Help: "Widget create/update attempts by outcome",
		},
		[]string{"op", "outcome"},
	)
)

// Register adds every collector to reg. Call once at startup.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(APIRequests, APILatency, WidgetWrites)
}
