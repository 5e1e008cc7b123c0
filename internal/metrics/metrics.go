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

	RewardsShown = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsShown,
			Help: HelpTextRewardsShown,
		},
		[]string{LabelToken},
	)
)

// Progression Metrics
var (
	Navigations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNavigations,
			Help: HelpTextNavigations,
		},
		[]string{LabelSource, LabelResult},
	)

	RewardsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsGranted,
			Help: HelpTextRewardsGranted,
		},
		[]string{LabelToken, LabelCollected},
	)

	WheelSpins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWheelSpins,
			Help: HelpTextWheelSpins,
		},
		[]string{LabelSlice},
	)

	QuizAnswers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuizAnswers,
			Help: HelpTextQuizAnswers,
		},
		[]string{LabelCorrect},
	)

	ScanCommits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameScanCommits,
			Help: HelpTextScanCommits,
		},
	)

	ScanSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameScanSessions,
			Help: HelpTextScanSessions,
		},
		[]string{LabelResult},
	)

	StorageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStorageErrors,
			Help: HelpTextStorageErrors,
		},
		[]string{LabelOperation},
	)

	ActivePlayers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActivePlayers,
			Help: HelpTextActivePlayers,
		},
	)

	StorageUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameStorageUp,
			Help: HelpTextStorageUp,
		},
	)

	EventStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameEventStreams,
			Help: HelpTextEventStreams,
		},
	)
)
