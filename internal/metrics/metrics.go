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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Spin Engine Metrics
var (
	SpinsRequested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinsRequested,
			Help: HelpTextSpinsRequested,
		},
		[]string{LabelKind},
	)

	SpinsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinsResolved,
			Help: HelpTextSpinsResolved,
		},
		[]string{LabelTier},
	)

	SpinsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinsRejected,
			Help: HelpTextSpinsRejected,
		},
		[]string{LabelKind, LabelReason},
	)

	RewardPayouts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardPayouts,
			Help: HelpTextRewardPayouts,
		},
		[]string{LabelAsset},
	)

	RewardFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardFallbacks,
			Help: HelpTextRewardFallbacks,
		},
		[]string{LabelAsset},
	)

	JackpotPool = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameJackpotPool,
			Help: HelpTextJackpotPool,
		},
	)

	JackpotPayouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameJackpotPayouts,
			Help: HelpTextJackpotPayouts,
		},
	)

	PendingSpins = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNamePendingSpins,
			Help: HelpTextPendingSpins,
		},
	)

	PendingSpinsStale = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNamePendingSpinsOld,
			Help: HelpTextPendingSpinsOld,
		},
	)

	OracleFulfillLag = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameOracleFulfillLag,
			Help:    HelpTextOracleFulfillLag,
			Buckets: FulfillLagBuckets,
		},
	)
)
