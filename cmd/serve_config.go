package cmd

import (
	"github.com/alpha-hack-program/cluster-insights-mcp/internal/server"
)

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Transport settings
	Transport string
	HTTPAddr  string

	// Endpoint paths
	SSEEndpoint     string
	MessageEndpoint string
	HTTPEndpoint    string

	// Kubernetes client settings
	KubeconfigPath string
	KubeContext    string
	QPSLimit       float32
	BurstLimit     int
	DebugMode      bool
	InCluster      bool

	// Logging settings
	LogLevel  string
	LogFormat string

	// Metrics server configuration
	Metrics MetricsServeConfig
}

// MetricsServeConfig holds configuration for the dedicated metrics server.
// Metrics are served on a separate listener so they stay scrapable (and
// firewall-able) independently of the MCP transport.
type MetricsServeConfig struct {
	Enabled bool
	Addr    string
}

// defaultMetricsConfig returns the metrics server defaults.
func defaultMetricsConfig() MetricsServeConfig {
	return MetricsServeConfig{
		Enabled: false,
		Addr:    server.DefaultMetricsAddr,
	}
}
