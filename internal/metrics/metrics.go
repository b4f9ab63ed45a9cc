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

	HTTPResponseBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPResponseBytes,
			Help:    HelpTextHTTPResponseBytes,
			Buckets: HTTPResponseSizeBuckets,
		},
		[]string{LabelMethod, LabelPath},
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

// Contest Metrics
var (
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSubmissions,
			Help: HelpTextSubmissions,
		},
		[]string{LabelResult},
	)

	QuestionsResolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameQuestionsResolved,
			Help: HelpTextQuestionsResolved,
		},
	)

	// QuestionsVoided is incremented directly by the lifecycle at window close
	QuestionsVoided = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameQuestionsVoided,
			Help: HelpTextQuestionsVoided,
		},
	)

	SubmissionsScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSubmissionsScored,
			Help: HelpTextSubmissionsScored,
		},
	)

	ScoringPassDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameScoringPassDuration,
			Help:    HelpTextScoringPassDuration,
			Buckets: ScoringPassBuckets,
		},
	)

	ContestTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameContestTransitions,
			Help: HelpTextContestTransitions,
		},
		[]string{LabelState},
	)

	ContestsFinalized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameContestsFinalized,
			Help: HelpTextContestsFinalized,
		},
	)

	PayoutMismatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePayoutMismatches,
			Help: HelpTextPayoutMismatches,
		},
	)

	PrizeMoneyDistributed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePrizeMoneyDistributed,
			Help: HelpTextPrizeMoneyDistributed,
		},
		[]string{LabelCurrency},
	)

	LeaderboardCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLeaderboardCache,
			Help: HelpTextLeaderboardCache,
		},
		[]string{LabelBackend, LabelResult},
	)
)

// Background job metrics
var (
	WorkerJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWorkerJobs,
			Help: HelpTextWorkerJobs,
		},
		[]string{LabelJob, LabelResult},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameWorkerJobDuration,
			Help:    HelpTextWorkerJobDuration,
			Buckets: ScoringPassBuckets,
		},
		[]string{LabelJob},
	)
)
