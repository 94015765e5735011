package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency
const (
	attrOperation = "operation"
	attrResult    = "result"
	attrMethod    = "method"
)

// Result values for the result attribute.
const (
	resultSuccess = "success"
	resultError   = "error"
)

// Metrics provides methods for recording observability metrics.
// The zero value is a no-op recorder, as is a nil *Metrics.
type Metrics struct {
	// Drive API metrics
	driveOperationsTotal   metric.Int64Counter
	driveOperationDuration metric.Float64Histogram
	downloadBytesTotal     metric.Int64Counter

	// OAuth metrics
	oauthAuthTotal         metric.Int64Counter
	oauthTokenRefreshTotal metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.driveOperationsTotal, err = meter.Int64Counter(
		"drive_api_operations_total",
		metric.WithDescription("Total number of Drive API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive_api_operations_total counter: %w", err)
	}

	m.driveOperationDuration, err = meter.Float64Histogram(
		"drive_api_operation_duration_seconds",
		metric.WithDescription("Drive API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive_api_operation_duration_seconds histogram: %w", err)
	}

	m.downloadBytesTotal, err = meter.Int64Counter(
		"drive_download_bytes_total",
		metric.WithDescription("Total number of bytes downloaded from Drive"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive_download_bytes_total counter: %w", err)
	}

	m.oauthAuthTotal, err = meter.Int64Counter(
		"oauth_auth_total",
		metric.WithDescription("Total number of OAuth authentication attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_auth_total counter: %w", err)
	}

	m.oauthTokenRefreshTotal, err = meter.Int64Counter(
		"oauth_token_refresh_total",
		metric.WithDescription("Total number of OAuth token refresh attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_token_refresh_total counter: %w", err)
	}

	return m, nil
}

// RecordDriveOperation records a Drive API operation with its outcome and duration.
func (m *Metrics) RecordDriveOperation(ctx context.Context, operation string, err error, duration time.Duration) {
	if m == nil || m.driveOperationsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrResult, resultLabel(err)),
	)
	m.driveOperationsTotal.Add(ctx, 1, attrs)
	m.driveOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordDownloadBytes records the number of bytes written by a download.
func (m *Metrics) RecordDownloadBytes(ctx context.Context, n int64) {
	if m == nil || m.downloadBytesTotal == nil {
		return
	}
	m.downloadBytesTotal.Add(ctx, n)
}

// RecordAuth records an authentication attempt.
// The method label is one of "cached", "refresh" or "interactive".
func (m *Metrics) RecordAuth(ctx context.Context, method string, err error) {
	if m == nil || m.oauthAuthTotal == nil {
		return
	}
	m.oauthAuthTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrResult, resultLabel(err)),
	))
}

// RecordTokenRefresh records a token refresh attempt.
func (m *Metrics) RecordTokenRefresh(ctx context.Context, err error) {
	if m == nil || m.oauthTokenRefreshTotal == nil {
		return
	}
	m.oauthTokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrResult, resultLabel(err)),
	))
}

func resultLabel(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}
