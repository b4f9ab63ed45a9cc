package metrics

import "github.com/prometheus/client_golang/prometheus"

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameHTTPResponseBytes    = "http_response_size_bytes"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Contest metric names
const (
	MetricNameSubmissions           = "prediction_submissions_total"
	MetricNameQuestionsResolved     = "questions_resolved_total"
	MetricNameQuestionsVoided       = "questions_voided_total"
	MetricNameSubmissionsScored     = "submissions_scored_total"
	MetricNameScoringPassDuration   = "scoring_pass_duration_seconds"
	MetricNameContestTransitions    = "contest_transitions_total"
	MetricNameContestsFinalized     = "contests_finalized_total"
	MetricNamePayoutMismatches      = "payout_sum_mismatches_total"
	MetricNamePrizeMoneyDistributed = "prize_money_distributed_total"
	MetricNameLeaderboardCache      = "leaderboard_cache_requests_total"
)

// Background job metric names
const (
	MetricNameWorkerJobs        = "worker_jobs_total"
	MetricNameWorkerJobDuration = "worker_job_duration_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextHTTPResponseBytes    = "HTTP response body size in bytes"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Contest metric help text
const (
	HelpTextSubmissions           = "Prediction submissions by outcome"
	HelpTextQuestionsResolved     = "Questions resolved by a game result"
	HelpTextQuestionsVoided       = "Questions voided because they were unresolved at window close"
	HelpTextSubmissionsScored     = "Submissions scored by the scoring pass"
	HelpTextScoringPassDuration   = "Duration of a contest evaluation pass in seconds"
	HelpTextContestTransitions    = "Contest lifecycle transitions by target state"
	HelpTextContestsFinalized     = "Contests finalized with a committed result"
	HelpTextPayoutMismatches      = "Finalization attempts aborted because payouts did not sum to the pool"
	HelpTextPrizeMoneyDistributed = "Prize money distributed at finalization"
	HelpTextLeaderboardCache      = "Leaderboard cache lookups by result"
)

// Background job help text
const (
	HelpTextWorkerJobs        = "Pooled background jobs by outcome"
	HelpTextWorkerJobDuration = "Pooled background job run time in seconds"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelResult   = "result"
	LabelState    = "state"
	LabelCurrency = "currency"
	LabelBackend  = "backend"
	LabelJob      = "job"
)

// routeUnmatched labels requests no chi route matched
const routeUnmatched = "unmatched"

// Submission result label values
const (
	SubmissionAccepted = "accepted"
	SubmissionReplaced = "replaced"
	SubmissionLate     = "late"
)

// Job result label values
const (
	JobSucceeded = "succeeded"
	JobFailed    = "failed"
	JobPanicked  = "panicked"
	JobDropped   = "dropped"
	JobSkipped   = "skipped"
)

// Cache result label values
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// HTTPResponseSizeBuckets spans 64B to 1MiB
var HTTPResponseSizeBuckets = prometheus.ExponentialBuckets(64, 4, 8)

// ScoringPassBuckets covers evaluation passes from 1ms to 30s
var ScoringPassBuckets = []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnknownPayload  = "Event payload has unexpected type"
	LogMsgMetricsRecorded = "Metrics recorded for event"
	LogMsgInvalidTotal    = "Finalized event carried an unparseable total"
)
