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
)

// Business metric names
const (
	MetricNameSpinsRequested   = "spins_requested_total"
	MetricNameSpinsResolved    = "spins_resolved_total"
	MetricNameSpinsRejected    = "spins_rejected_total"
	MetricNameRewardPayouts    = "reward_payouts_total"
	MetricNameRewardFallbacks  = "reward_fallbacks_total"
	MetricNameJackpotPool      = "jackpot_pool_base_units"
	MetricNameJackpotPayouts   = "jackpot_payouts_total"
	MetricNamePendingSpins     = "pending_spins"
	MetricNamePendingSpinsOld  = "pending_spins_stale"
	MetricNameOracleFulfillLag = "oracle_fulfillment_lag_seconds"
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
)

// Business metric help text
const (
	HelpTextSpinsRequested   = "Total number of spin requests submitted to the oracle"
	HelpTextSpinsResolved    = "Total number of fulfilled spins by resolved tier"
	HelpTextSpinsRejected    = "Total number of rejected spin attempts by reason"
	HelpTextRewardPayouts    = "Total number of reward payouts attempted by asset"
	HelpTextRewardFallbacks  = "Total number of fallback substitutions by asset"
	HelpTextJackpotPool      = "Current jackpot pool size in base units"
	HelpTextJackpotPayouts   = "Total number of jackpot payouts"
	HelpTextPendingSpins     = "Current number of pending randomness requests"
	HelpTextPendingSpinsOld  = "Pending randomness requests older than the stale threshold"
	HelpTextOracleFulfillLag = "Seconds between randomness submission and fulfillment"
)

// ============================================================================
// Metric Labels
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelKind   = "kind"
	LabelTier   = "tier"
	LabelReason = "reason"
	LabelAsset  = "asset"
)

// HTTPLatencyBuckets are the histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// FulfillLagBuckets cover the oracle's unbounded delay from seconds to hours.
var FulfillLagBuckets = []float64{1, 5, 15, 60, 300, 900, 3600, 14400, 86400}
