package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
	MetricNameRewardsShown       = "rewards_shown_total"
)

// Progression metric names
const (
	MetricNameNavigations    = "navigations_total"
	MetricNameRewardsGranted = "rewards_granted_total"
	MetricNameWheelSpins     = "wheel_spins_total"
	MetricNameQuizAnswers    = "quiz_answers_total"
	MetricNameScanCommits    = "scan_commits_total"
	MetricNameScanSessions   = "scan_sessions_started_total"
	MetricNameStorageErrors  = "storage_errors_total"
	MetricNameActivePlayers  = "active_players"
	MetricNameStorageUp      = "storage_up"
	MetricNameEventStreams   = "event_streams"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
	HelpTextRewardsShown       = "Total number of reward presentations pushed to players"
)

// Progression metric help text
const (
	HelpTextNavigations    = "Total number of navigation attempts"
	HelpTextRewardsGranted = "Total number of reward grants"
	HelpTextWheelSpins     = "Total number of wheel spins by landing slice"
	HelpTextQuizAnswers    = "Total number of quiz answers"
	HelpTextScanCommits    = "Total number of navigations committed by a camera scan"
	HelpTextScanSessions   = "Total number of camera scan sessions started"
	HelpTextStorageErrors  = "Total number of failed progress store operations"
	HelpTextActivePlayers  = "Number of players held in memory"
	HelpTextStorageUp      = "1 when the last storage probe succeeded"
	HelpTextEventStreams   = "Number of open event streams"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelResult    = "result"
	LabelSource    = "source"
	LabelToken     = "token"
	LabelCollected = "collected"
	LabelSlice     = "slice"
	LabelCorrect   = "correct"
	LabelOperation = "operation"
)

// Label values
const (
	ResultOK         = "ok"
	ResultOutOfRange = "out_of_range"
	ResultFailed     = "failed"

	SourceUI    = "ui"
	SourceStep  = "step"
	SourceScan  = "scan"
	SourceDebug = "debug"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
