package instrumentation

import (
	"fmt"
	"os"
	"strconv"
)

// Supported metrics exporter types.
const (
	ExporterStdout = "stdout"
	ExporterNone   = "none"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: drivefetch)
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Enabled determines if instrumentation is active (default: true)
	// Set to false via INSTRUMENTATION_ENABLED=false to disable metrics.
	Enabled bool

	// MetricsExporter specifies the metrics exporter type.
	// Options: "stdout", "none" (default: "none")
	MetricsExporter string
}

// DefaultConfig returns a Config with sensible defaults based on environment variables.
func DefaultConfig() Config {
	return Config{
		ServiceName:     getEnvOrDefault("OTEL_SERVICE_NAME", "drivefetch"),
		ServiceVersion:  "unknown",
		Enabled:         getEnvBoolOrDefault("INSTRUMENTATION_ENABLED", true),
		MetricsExporter: getEnvOrDefault("METRICS_EXPORTER", ExporterNone),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validExporters := map[string]bool{ExporterStdout: true, ExporterNone: true}
	if c.MetricsExporter != "" && !validExporters[c.MetricsExporter] {
		return fmt.Errorf("invalid metrics exporter %q (must be %q or %q)",
			c.MetricsExporter, ExporterStdout, ExporterNone)
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBoolOrDefault(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
