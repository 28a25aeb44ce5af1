// Package instrumentation provides OpenTelemetry metrics for EWS traffic.
//
// Metrics are exported either to stdout on shutdown (the default, suitable
// for one-shot CLI runs) or pushed to an OTLP collector. Instrumentation is
// off unless INSTRUMENTATION_ENABLED=true; a disabled provider hands out a
// nil *Metrics, and every recording method is a no-op on a nil receiver, so
// call sites never branch on whether metrics are on.
//
// Exported metrics:
//   - ews_requests_total{operation,status}
//   - ews_request_duration_seconds{operation}
//   - auth_attempts_total{status}
package instrumentation
