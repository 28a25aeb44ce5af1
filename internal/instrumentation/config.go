package instrumentation

import (
	"fmt"
	"os"
	"strconv"
)

// Exporter names accepted by Config.MetricsExporter.
const (
	// ExporterStdout prints metrics on shutdown. Suited to one-shot CLI
	// runs and debugging.
	ExporterStdout = "stdout"

	// ExporterOTLP pushes metrics to an OTLP collector over HTTP.
	ExporterOTLP = "otlp"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: roomcal).
	ServiceName string

	// ServiceVersion is the version of the service.
	ServiceVersion string

	// Enabled determines if instrumentation is active (default: false).
	// Set INSTRUMENTATION_ENABLED=true to record and export metrics.
	Enabled bool

	// MetricsExporter specifies the metrics exporter type.
	// Options: "stdout", "otlp" (default: "stdout").
	MetricsExporter string

	// OTLPEndpoint is the OTLP collector endpoint, host:port without a
	// protocol prefix. Required for the otlp exporter.
	OTLPEndpoint string

	// OTLPInsecure controls whether to use unencrypted HTTP for OTLP
	// export. Keep false outside local development.
	OTLPInsecure bool
}

// DefaultConfig returns a Config populated from environment variables.
func DefaultConfig() Config {
	return Config{
		ServiceName:     getEnvOrDefault("OTEL_SERVICE_NAME", "roomcal"),
		ServiceVersion:  "unknown",
		Enabled:         getEnvBool("INSTRUMENTATION_ENABLED", false),
		MetricsExporter: getEnvOrDefault("METRICS_EXPORTER", ExporterStdout),
		OTLPEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", false),
	}
}

// Validate checks the configuration for inconsistencies.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch c.MetricsExporter {
	case ExporterStdout:
	case ExporterOTLP:
		if c.OTLPEndpoint == "" {
			return fmt.Errorf("OTLP endpoint is required for the otlp metrics exporter; set OTEL_EXPORTER_OTLP_ENDPOINT")
		}
	default:
		return fmt.Errorf("unsupported metrics exporter: %s", c.MetricsExporter)
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
