package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Auth metric names
const (
	MetricNameAuthFailures     = "auth_failures_total"
	MetricNameKeySetFetches    = "keyset_fetches_total"
	MetricNameKeySetFetchFails = "keyset_fetch_failures_total"
)

// Collection metric names
const (
	MetricNameItemsAdded   = "collection_items_added_total"
	MetricNameItemsUpdated = "collection_items_updated_total"
	MetricNameItemsRemoved = "collection_items_removed_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Auth metric help text
const (
	HelpTextAuthFailures     = "Total number of rejected authentication attempts"
	HelpTextKeySetFetches    = "Total number of signing key set fetches"
	HelpTextKeySetFetchFails = "Total number of failed signing key set fetches"
)

// Collection metric help text
const (
	HelpTextItemsAdded   = "Total number of collection items added"
	HelpTextItemsUpdated = "Total number of collection items updated"
	HelpTextItemsRemoved = "Total number of collection items removed"
)

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelReason = "reason"
)

// HTTPLatencyBuckets are the histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
