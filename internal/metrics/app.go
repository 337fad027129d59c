// Package metrics emits application metrics through the global telemetry
// system. Every helper is a no-op until observability.InitMetrics has run,
// so the core stays usable from tests and the CLI without telemetry.
package metrics

import (
	"time"

	"github.com/nameforge/nameforge/internal/observability"
)

// Metric names following Prometheus conventions.
const (
	ScansTotalName      = "app_scans_total"
	ScanDurationName    = "app_scan_duration_ms"
	ScanLookupsName     = "app_scan_lookups"
	ScanFoundName       = "app_scan_found"
	LookupsTotalName    = "app_lookups_total"
	CompletionsName     = "app_completions_total"
	ServerStartTimeName = "app_server_start_time_seconds"
)

// RecordScan records one finished availability scan.
func RecordScan(checked, found int, duration time.Duration) {
	if observability.TelemetrySystem == nil {
		return
	}

	labels := map[string]string{
		"outcome": scanOutcome(found),
	}

	_ = observability.TelemetrySystem.Counter(ScansTotalName, 1, labels)
	_ = observability.TelemetrySystem.Histogram(ScanDurationName, duration, labels)
	_ = observability.TelemetrySystem.Gauge(ScanLookupsName, float64(checked), nil)
	_ = observability.TelemetrySystem.Gauge(ScanFoundName, float64(found), nil)
}

// RecordLookup records one availability lookup outcome
// ("available", "taken", or "error").
func RecordLookup(outcome string) {
	if observability.TelemetrySystem == nil {
		return
	}

	_ = observability.TelemetrySystem.Counter(
		LookupsTotalName,
		1,
		map[string]string{"outcome": outcome},
	)
}

// RecordCompletion records one LLM completion request.
func RecordCompletion(provider string, success bool) {
	if observability.TelemetrySystem == nil {
		return
	}

	status := "success"
	if !success {
		status = "failure"
	}

	_ = observability.TelemetrySystem.Counter(
		CompletionsName,
		1,
		map[string]string{
			"provider": provider,
			"status":   status,
		},
	)
}

// SetServerStartTime records the server start time (Unix timestamp).
func SetServerStartTime(timestamp int64) {
	if observability.TelemetrySystem == nil {
		return
	}

	_ = observability.TelemetrySystem.Gauge(ServerStartTimeName, float64(timestamp), nil)
}

func scanOutcome(found int) string {
	if found == 0 {
		return "empty"
	}
	return "found"
}
