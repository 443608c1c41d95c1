package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal   *prometheus.CounterVec
	activityTotal       *prometheus.CounterVec
	aggregationDuration prometheus.Histogram
	registerOnce        sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quickpoll",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the poll API.",
		}, []string{"method", "path", "status"})

		activityTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quickpoll",
			Name:      "activity_total",
			Help:      "Committed votes, likes and unlikes.",
		}, []string{"kind"})

		aggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quickpoll",
			Name:      "aggregation_duration_seconds",
			Help:      "Time spent building a poll aggregate.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func IncActivity(kind string) {
	if activityTotal == nil {
		return
	}
	activityTotal.WithLabelValues(kind).Inc()
}

func ObserveAggregation(d time.Duration) {
	if aggregationDuration == nil {
		return
	}
	aggregationDuration.Observe(d.Seconds())
}

// ActivityCounter exposes the activity counter; nil before Register.
func ActivityCounter() *prometheus.CounterVec {
	return activityTotal
}
