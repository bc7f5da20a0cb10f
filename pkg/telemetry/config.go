package telemetry

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level sets the minimum log level (trace, debug, info, warn,
	// error, fatal).
	Level string

	// Format specifies the log format (console, json).
	Format string

	// Output specifies where logs are written (stdout, stderr, or a
	// file path).
	Output string
}

// MetricsConfig configures Prometheus metrics collection.
type MetricsConfig struct {
	// Enabled turns metric collection on.
	Enabled bool

	// Namespace prefixes every metric name.
	Namespace string

	// ListenAddress is the address for the metrics HTTP listener.
	ListenAddress string

	// Path is the HTTP path serving the metrics endpoint.
	Path string
}

// DefaultLoggingConfig returns console logging at info level on stderr.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:  "info",
		Format: "console",
		Output: "stderr",
	}
}

// DefaultMetricsConfig returns a disabled metrics configuration with
// standard listener defaults.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:       false,
		Namespace:     "kubeact",
		ListenAddress: ":9464",
		Path:          "/metrics",
	}
}
