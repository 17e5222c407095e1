package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "fitlog", Name: "http_requests_total", Help: "HTTP requests by method, route and status code."},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "fitlog", Name: "http_request_duration_seconds", Help: "HTTP request latency by method and route.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
	ActivitiesLogged = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "fitlog", Name: "activities_logged_total", Help: "Activities stored by the log endpoint, by MET type."},
		[]string{"type"},
	)
	StoreOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "fitlog", Name: "store_operations_total", Help: "Document store calls by operation and outcome (ok, not_found, error)."},
		[]string{"operation", "outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
	reg.MustRegister(ActivitiesLogged)
	reg.MustRegister(StoreOperations)
}
