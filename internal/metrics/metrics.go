package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Auth Metrics
var (
	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAuthFailures,
			Help: HelpTextAuthFailures,
		},
		[]string{LabelReason},
	)

	KeySetFetches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameKeySetFetches,
			Help: HelpTextKeySetFetches,
		},
	)

	KeySetFetchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameKeySetFetchFails,
			Help: HelpTextKeySetFetchFails,
		},
	)
)

// Collection Metrics
var (
	ItemsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameItemsAdded,
			Help: HelpTextItemsAdded,
		},
	)

	ItemsUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameItemsUpdated,
			Help: HelpTextItemsUpdated,
		},
	)

	ItemsRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameItemsRemoved,
			Help: HelpTextItemsRemoved,
		},
	)
)
