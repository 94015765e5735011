// Package instrumentation provides OpenTelemetry metrics for Drive API
// operations and OAuth events.
//
// Because drivefetch is a short-lived CLI process, only push-on-shutdown
// exporters are supported: "stdout" dumps collected metrics when the
// provider shuts down, "none" disables export entirely. The Metrics
// recorder is nil-safe so callers can record unconditionally.
package instrumentation
