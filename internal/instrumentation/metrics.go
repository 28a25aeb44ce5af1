package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrOperation = "operation"
	attrStatus    = "status"
)

// Status values shared with the logging package.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics records counters and histograms for EWS traffic. A nil *Metrics
// is a valid no-op recorder, so callers never need nil checks.
type Metrics struct {
	ewsRequestsTotal   metric.Int64Counter
	ewsRequestDuration metric.Float64Histogram
	authAttemptsTotal  metric.Int64Counter
}

// NewMetrics creates a Metrics instance registered on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error
	m.ewsRequestsTotal, err = meter.Int64Counter(
		"ews_requests_total",
		metric.WithDescription("Total number of EWS operations"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ews_requests_total counter: %w", err)
	}

	m.ewsRequestDuration, err = meter.Float64Histogram(
		"ews_request_duration_seconds",
		metric.WithDescription("EWS operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ews_request_duration_seconds histogram: %w", err)
	}

	m.authAttemptsTotal, err = meter.Int64Counter(
		"auth_attempts_total",
		metric.WithDescription("Total number of mailbox access verification attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth_attempts_total counter: %w", err)
	}

	return m, nil
}

// RecordRequest records one EWS round trip with its operation name, status
// and duration.
func (m *Metrics) RecordRequest(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil || m.ewsRequestsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.ewsRequestsTotal.Add(ctx, 1, attrs)
	m.ewsRequestDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(attribute.String(attrOperation, operation)))
}

// RecordAuthAttempt records one verification attempt outcome.
func (m *Metrics) RecordAuthAttempt(ctx context.Context, status string) {
	if m == nil || m.authAttemptsTotal == nil {
		return
	}
	m.authAttemptsTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String(attrStatus, status)))
}
