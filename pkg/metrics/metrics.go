// Package metrics provides the Prometheus metrics registry reference for
// the Docstore client. The metrics themselves are defined in their
// respective packages (client, cache, ratelimit, pager) to maintain
// modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the Docstore client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Rate Limit Metrics (pkg/ratelimit):
//   - docstore_rate_limit_remaining (Gauge): Requests remaining in the current window
//   - docstore_rate_limit_blocks_total (Counter): Requests blocked due to critical budget
//   - docstore_rate_limit_throttles_total (Counter): Requests throttled due to low budget
//
// Cache Metrics (pkg/cache):
//   - docstore_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - docstore_cache_misses_total (Counter): Cache misses
//   - docstore_cache_size_bytes{layer="redis"} (Gauge): Current cache size in bytes
//   - docstore_304_responses_total (Counter): 304 Not Modified responses
//   - docstore_conditional_requests_total (Counter): Conditional requests sent
//   - docstore_cache_errors_total{operation} (Counter): Cache operation errors
//
// Request Metrics (pkg/client):
//   - docstore_requests_total{endpoint, status} (Counter): Requests by endpoint and status
//   - docstore_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - docstore_errors_total{class} (Counter): Errors by class
//
// Retry Metrics (pkg/client):
//   - docstore_retries_total{error_class} (Counter): Retry attempts by error class
//   - docstore_retry_backoff_seconds{error_class} (Histogram): Backoff duration by class
//   - docstore_retry_exhausted_total{error_class} (Counter): Requests that exhausted retries
//
// Pagination Metrics (pkg/pager):
//   - docstore_pager_fetches_total (Counter): Page fetches issued past the first page
//   - docstore_pager_fetch_errors_total (Counter): Page fetches that failed
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(docstore_cache_hits_total[5m])) /
//   (sum(rate(docstore_cache_hits_total[5m])) + sum(rate(docstore_cache_misses_total[5m])))
//
//   # Rate Limit Status
//   docstore_rate_limit_remaining < 20
//
//   # Request Error Rate
//   rate(docstore_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(docstore_request_duration_seconds_bucket[5m]))
