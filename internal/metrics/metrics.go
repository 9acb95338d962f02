package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "concessions_http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
	RequestDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "concessions_http_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	RawStatementsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "concessions_raw_statements_total",
		Help: "Raw statements executed through the gateway, by command verb",
	}, []string{"command"})
	RawRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "concessions_raw_statements_rejected_total",
		Help: "Raw statements rejected by the allow-list gate",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(RawStatementsTotal)
	prometheus.MustRegister(RawRejectedTotal)
}

// Handler exposes the registered metrics for Prometheus scraping; mounted at
// /metrics in the main router.
func Handler() http.Handler { return promhttp.Handler() }
