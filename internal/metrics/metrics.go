// Package metrics defines the Prometheus collectors exported by the skyclock
// HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Requests       *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
	RateLimited    prometheus.Counter
	AbsentEvents   *prometheus.CounterVec
	InFlight       prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "skyclock_http_requests_total",
			Help: "Total number of API requests by route and status code.",
		}, []string{"route", "code"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skyclock_http_request_duration_seconds",
			Help:    "Duration of API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		RateLimited: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "skyclock_http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter.",
		}),
		AbsentEvents: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "skyclock_absent_events_total",
			Help: "Solar and lunar events that did not occur on the requested day.",
		}, []string{"event"}),
		InFlight: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "skyclock_http_in_flight_requests",
			Help: "Current number of API requests being served.",
		}),
	}
}
